package main

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Rahulguptaid/ViewModelExample/internal/errors"
	"github.com/Rahulguptaid/ViewModelExample/internal/fixtures"
	"github.com/Rahulguptaid/ViewModelExample/pkg/apiserver"
	"github.com/Rahulguptaid/ViewModelExample/pkg/remoteview"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// LoginViewPath is where the websocket login view is mounted.
const LoginViewPath = "/ws/login"

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo backend",
		Long: `Run the demo backend.

The server answers the login and user directory requests from the
fixture data, serves a websocket login view and exposes Prometheus
metrics.

Examples:
  vmkit serve
  vmkit serve --port=9090
  vmkit serve --config=./vmkit.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vmkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vmkit.json)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if port > 0 {
		e.cfg.Server.Port = port
	}
	if host != "" {
		e.cfg.Server.Host = host
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	data, err := fixtures.Load(e.cfg.FixturesPath())
	if err != nil {
		return err
	}

	// The login view signs in through the configured backend, which is this
	// server unless api.baseURL says otherwise.
	client, err := e.client()
	if err != nil {
		return err
	}

	api := apiserver.New(data, apiserver.WithLogger(e.logger))
	views := remoteview.NewHandler(client,
		remoteview.WithLogger(e.logger),
		remoteview.WithViewModelOptions(e.viewModelOptions(nil, prometheus.DefaultRegisterer)...),
	)

	r := api.Router()
	r.Handle(LoginViewPath, views)
	if e.cfg.MetricsEnabled() {
		r.Handle(e.cfg.Metrics.Path, promhttp.Handler())
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              e.cfg.Address(),
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
		// Websocket views end when the server context is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	success("Listening on http://%s", e.cfg.Address())
	if p := e.cfg.Path(); p != "" {
		info("Config:     %s", p)
	}
	info("Categories: %s", strings.Join(data.Categories(), ", "))
	info("Login view: ws://%s%s", e.cfg.Address(), LoginViewPath)
	if e.cfg.MetricsEnabled() {
		info("Metrics:    http://%s%s", e.cfg.Address(), e.cfg.Metrics.Path)
	}

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("E253").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		warn("Shutdown: %v", err)
	}
	return nil
}
