package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/Rahulguptaid/ViewModelExample/internal/errors"
	"github.com/Rahulguptaid/ViewModelExample/pkg/binding"
	"github.com/Rahulguptaid/ViewModelExample/pkg/dispatch"
	"github.com/Rahulguptaid/ViewModelExample/pkg/validation"
	"github.com/Rahulguptaid/ViewModelExample/pkg/viewmodel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backend",
		Long: `Sign in to the backend.

Missing credentials are prompted for.

Examples:
  vmkit login
  vmkit login --email=a@b.com --password=x`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), email, password)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "P", "", "Account password")

	return cmd
}

func runLogin(ctx context.Context, email, password string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	client, err := e.client()
	if err != nil {
		return err
	}

	if email == "" {
		if email, err = ask("email", &survey.Input{Message: "Email:"}); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = ask("password", &survey.Password{Message: "Password:"}); err != nil {
			return err
		}
	}

	queue := dispatch.NewQueue(0, e.logger)
	vm := viewmodel.NewLogin(client, nil, e.viewModelOptions(queue, prometheus.NewRegistry())...)

	if err := signIn(ctx, vm, queue, email, password, os.Stdout); err != nil {
		return err
	}
	success("Signed in as %s", vm.Session().UserID())
	if token := vm.Session().Token(); token != "" {
		info("Token: %s", token)
	}
	return nil
}

// signIn fills the form, validates it and runs the sign-in on queue until
// it finishes or fails.
func signIn(ctx context.Context, vm *viewmodel.LoginViewModel, queue *dispatch.Queue, email, password string, w io.Writer) error {
	emailField, passwordField := binding.NewTextField(), binding.NewTextField()
	binding.TwoWay(emailField, vm.Email)
	binding.TwoWay(passwordField, vm.Password)
	emailField.Edit(email)
	passwordField.Edit(password)

	if res := vm.Validate(); !res.Valid() {
		return errors.New("E252").WithDetail(describeRules(res.Rules()))
	}

	var failure error
	vm.Hooks = viewmodel.Hooks{
		UpdateLoadingStatus: func() {
			if vm.IsLoading() {
				fmt.Fprintln(w, "  Signing in...")
			}
		},
		ShowAlert: func() {
			if msg, ok := vm.LastError(); ok {
				failure = errors.New("E250").WithDetail(msg)
				queue.Close()
			}
		},
		DidFinishFetch: queue.Close,
	}

	queue.Dispatch(func() { vm.SignIn(ctx) })
	if err := queue.Run(ctx); err != nil && !stderrors.Is(err, dispatch.ErrClosed) {
		return err
	}
	return failure
}

func describeRules(rules []validation.BrokenRule) string {
	msgs := make([]string, len(rules))
	for i, r := range rules {
		msgs[i] = r.Message
	}
	return strings.Join(msgs, "; ")
}

// ask runs a single survey prompt for the named field.
func ask(field string, p survey.Prompt) (string, error) {
	var out string
	if err := survey.AskOne(p, &out, survey.WithValidator(survey.Required)); err != nil {
		if stderrors.Is(err, terminal.InterruptErr) {
			return "", errors.New("E254")
		}
		return "", errors.Newf(errors.CategoryCLI, "Could not read %s", field).Wrap(err)
	}
	return out, nil
}
