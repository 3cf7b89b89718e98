package main

import (
	"github.com/cristianoliveira/msgstack/cmd"
	"github.com/cristianoliveira/msgstack/internal/app"
	"github.com/cristianoliveira/msgstack/internal/config"
	"github.com/spf13/cobra"
)

// NewCleanupCmd creates the cleanup command with explicit dependencies.
func NewCleanupCmd(client app.CleanupClient) *cobra.Command {
	if client == nil {
		panic("NewCleanupCmd: client dependency cannot be nil")
	}

	var daysFlag int
	var dryRunFlag bool

	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old journal entries",
		Long: `Remove old journal entries.

Deletes recorded queue events older than the given number of days, or the
cleanup_days config value when --days is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewCleanupUseCase(client).Execute(cmd.Context(), app.CleanupInput{
				Days:         daysFlag,
				DryRun:       dryRunFlag,
				Output:       cmd.OutOrStdout(),
				LoadConfig:   config.Load,
				GetConfigInt: config.GetInt,
			})
		},
	}

	// Default days 0 means "use config value"
	cleanupCmd.Flags().IntVar(&daysFlag, "days", 0, "Remove entries older than N days (default: MSGSTACK_CLEANUP_DAYS config value)")
	cleanupCmd.Flags().BoolVar(&dryRunFlag, "dryrun", false, "Show how many entries would be removed without removing them")

	return cleanupCmd
}

var cleanupCmd = NewCleanupCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(cleanupCmd)
}
