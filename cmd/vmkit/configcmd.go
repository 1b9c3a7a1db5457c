package main

import (
	"os"

	"github.com/Rahulguptaid/ViewModelExample/internal/config"
	"github.com/Rahulguptaid/ViewModelExample/internal/errors"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vmkit.json",
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a vmkit.json with the defaults",
		Long: `Write a vmkit.json with every default filled in.

The file is written to --config, or ./vmkit.json when it is not set.

Examples:
  vmkit config init
  vmkit config init --config=./deploy/vmkit.json --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.ConfigFileName
			}
			if err := initConfig(path, force); err != nil {
				return err
			}
			success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

// initConfig writes the default configuration to path.
func initConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New("E108").WithDetail(path + " already exists.")
	}
	return config.New().SaveTo(path)
}
