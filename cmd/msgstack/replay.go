package main

import (
	"github.com/cristianoliveira/msgstack/cmd"
	"github.com/cristianoliveira/msgstack/internal/app"
	"github.com/spf13/cobra"
)

// NewReplayCmd creates the replay command with explicit dependencies.
func NewReplayCmd(client app.ReplayClient) *cobra.Command {
	if client == nil {
		panic("NewReplayCmd: client dependency cannot be nil")
	}

	var grepFlag string

	replayCmd := &cobra.Command{
		Use:   "replay <scenario>",
		Short: "Run a scenario headless and print the transcript",
		Long: `Run a scenario headless and print the transcript.

The scenario runs against a simulated clock. Each line shows the offset and
one thing that happened: steps, queue events, slot snapshots, container
callbacks and handler calls.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewReplayUseCase(client).Execute(app.ReplayInput{
				Scenario: args[0],
				Grep:     grepFlag,
				Output:   cmd.OutOrStdout(),
			})
		},
	}

	replayCmd.Flags().StringVar(&grepFlag, "grep", "", "Only print lines containing this text")

	return replayCmd
}

var replayCmd = NewReplayCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(replayCmd)
}
