package main

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Rahulguptaid/ViewModelExample/internal/config"
	"github.com/Rahulguptaid/ViewModelExample/internal/errors"
	"github.com/Rahulguptaid/ViewModelExample/pkg/dispatch"
	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"github.com/Rahulguptaid/ViewModelExample/pkg/telemetry"
	"github.com/Rahulguptaid/ViewModelExample/pkg/viewmodel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Flags shared by every command.
var (
	configPath string
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vmkit",
		Short: "Login and user directory view-models with a demo backend",
		Long: `vmkit drives the sign-in and user directory view-models.

Commands:
  • serve   run the demo backend, the websocket login view and /metrics
  • login   sign in from the terminal
  • users   list the user directory
  • config  write a default vmkit.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			errors.SetColors(!noColor && os.Getenv("NO_COLOR") == "")
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to vmkit.json (default ./vmkit.json if present)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output (also NO_COLOR)")

	rootCmd.AddCommand(
		serveCmd(),
		loginCmd(),
		usersCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	var e *errors.Error
	if stderrors.As(err, &e) {
		fmt.Fprint(os.Stderr, e.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
}

// env is what every command builds from vmkit.json.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		logger: cfg.NewLogger(os.Stderr),
	}, nil
}

// client returns the backend client described by the api settings.
func (e *env) client() (*network.Client, error) {
	c, err := network.NewClient(e.cfg.APIBaseURL(),
		network.WithTimeout(e.cfg.APITimeout()),
		network.WithLogger(e.logger),
		network.WithTracer(telemetry.Tracer()),
	)
	if err != nil {
		return nil, errors.FromError(err, "E201")
	}
	return c, nil
}

// viewModelOptions returns the options shared by every view-model the CLI
// builds. One-shot commands register metrics on a private registry.
func (e *env) viewModelOptions(d dispatch.Dispatcher, reg prometheus.Registerer) []viewmodel.Option {
	opts := []viewmodel.Option{
		viewmodel.WithLogger(e.logger),
		viewmodel.WithTracer(telemetry.Tracer()),
		viewmodel.WithObserver(telemetry.NewActionMetrics(telemetry.WithRegistry(reg))),
	}
	if d != nil {
		opts = append(opts, viewmodel.WithDispatcher(d))
	}
	return opts
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
