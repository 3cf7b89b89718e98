package main

import (
	"strings"

	"github.com/cristianoliveira/msgstack/cmd"
	"github.com/cristianoliveira/msgstack/internal/app"
	"github.com/cristianoliveira/msgstack/internal/format"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(client app.HistoryClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	var input app.HistoryInput

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded queue events",
		Long: `List recorded queue events.

Every run of the terminal host is a session. Its enqueued, shown, hidden and
dismissed events are kept in the journal until cleanup removes them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Output = cmd.OutOrStdout()
			return app.NewHistoryUseCase(client).Execute(cmd.Context(), input)
		},
	}

	historyCmd.Flags().StringVar(&input.Session, "session", "", "Only show events of this session")
	historyCmd.Flags().StringVar(&input.Event, "event", "", "Only show events of this type (enqueued, shown, hidden, dismissed)")
	historyCmd.Flags().StringVar(&input.Key, "key", "", "Only show events of this message key")
	historyCmd.Flags().DurationVar(&input.Since, "since", 0, "Only show events newer than this (e.g. 1h)")
	historyCmd.Flags().IntVar(&input.Limit, "limit", 0, "Show at most N events (0 for all)")
	historyCmd.Flags().BoolVar(&input.Sessions, "sessions", false, "List sessions instead of events")
	historyCmd.Flags().StringVar(&input.Format, "format", string(format.FormatterTypeSimple), "Output format: "+strings.Join(format.Types(), ", "))

	return historyCmd
}

var historyCmd = NewHistoryCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(historyCmd)
}
