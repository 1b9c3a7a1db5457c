package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Rahulguptaid/ViewModelExample/internal/errors"
	"github.com/Rahulguptaid/ViewModelExample/pkg/dispatch"
	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"github.com/Rahulguptaid/ViewModelExample/pkg/viewmodel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func usersCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the user directory",
		Long: `List the user directory.

Examples:
  vmkit users
  vmkit users --type=agent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsers(cmd.Context(), category)
		},
	}

	cmd.Flags().StringVarP(&category, "type", "t", "", "User category (default all)")

	return cmd
}

func runUsers(ctx context.Context, category string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	client, err := e.client()
	if err != nil {
		return err
	}

	queue := dispatch.NewQueue(0, e.logger)
	vm := viewmodel.NewUsers(client, category, e.viewModelOptions(queue, prometheus.NewRegistry())...)

	users, err := populate(ctx, vm, queue)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		warn("No users")
		return nil
	}
	return printUsers(os.Stdout, users)
}

// populate runs PopulateSources on queue and returns the records the
// collection was replaced with.
func populate(ctx context.Context, vm *viewmodel.UsersViewModel, queue *dispatch.Queue) ([]network.PropertyListUser, error) {
	var (
		users   []network.PropertyListUser
		failure error
	)
	vm.BindSources(func(u []network.PropertyListUser) { users = u })
	vm.Hooks = viewmodel.Hooks{
		ShowAlert: func() {
			if msg, ok := vm.LastError(); ok {
				failure = errors.New("E251").WithDetail(msg)
				queue.Close()
			}
		},
		DidFinishFetch: queue.Close,
	}

	queue.Dispatch(func() { vm.PopulateSources(ctx) })
	if err := queue.Run(ctx); err != nil && !stderrors.Is(err, dispatch.ErrClosed) {
		return nil, err
	}
	return users, failure
}

func printUsers(w io.Writer, users []network.PropertyListUser) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tMLS")
	for _, u := range users {
		id := "-"
		if u.Id != nil {
			id = fmt.Sprint(*u.Id)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, u.DisplayName(), field(u.EmailID), field(u.Phone), field(u.MLSID))
	}
	return tw.Flush()
}

func field(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
