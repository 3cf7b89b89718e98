package main

import (
	"github.com/cristianoliveira/msgstack/cmd"
	"github.com/cristianoliveira/msgstack/internal/app"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command with explicit dependencies.
func NewConfigCmd(client app.ConfigClient) *cobra.Command {
	if client == nil {
		panic("NewConfigCmd: client dependency cannot be nil")
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration",
		Long:  `Show the effective configuration, or write a sample config file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewConfigUseCase(client).Show(cmd.OutOrStdout())
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewConfigUseCase(client).Show(cmd.OutOrStdout())
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return app.NewConfigUseCase(client).Init(path, cmd.OutOrStdout())
		},
	})

	return configCmd
}

var configCmd = NewConfigCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(configCmd)
}
