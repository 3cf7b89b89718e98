package main

import (
	"github.com/cristianoliveira/msgstack/cmd"
	"github.com/cristianoliveira/msgstack/internal/app"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command with explicit dependencies.
func NewWatchCmd(client app.WatchClient) *cobra.Command {
	if client == nil {
		panic("NewWatchCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Show message files dropped into a directory",
		Long: `Show message files dropped into a directory.

Every *.toml, *.yaml or *.yml file in the directory is a message keyed by its
file name. Writing the file again replaces the message; removing it dismisses
the message. Files hold title, description, level and autodismiss fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewWatchUseCase(client).Execute(cmd.Context(), app.WatchInput{Dir: args[0]})
		},
	}
}

var watchCmd = NewWatchCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(watchCmd)
}
