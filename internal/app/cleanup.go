package app

import (
	"context"
	"fmt"
	"io"
)

// CleanupClient defines dependencies required by cleanup command.
type CleanupClient interface {
	CleanupJournal(ctx context.Context, days int, dryRun bool) (int64, error)
}

// CleanupUseCase coordinates cleanup behavior.
type CleanupUseCase struct {
	client CleanupClient
}

// NewCleanupUseCase creates a cleanup use-case.
func NewCleanupUseCase(client CleanupClient) *CleanupUseCase {
	if client == nil {
		panic("NewCleanupUseCase: client dependency cannot be nil")
	}

	return &CleanupUseCase{client: client}
}

// CleanupInput holds parsed cleanup options.
type CleanupInput struct {
	Days         int
	DryRun       bool
	Output       io.Writer
	LoadConfig   func()
	GetConfigInt func(key string, defaultValue int) int
}

// Execute prunes journal entries older than the requested number of days.
// Zero days means the cleanup_days config value.
func (u *CleanupUseCase) Execute(ctx context.Context, input CleanupInput) error {
	if input.LoadConfig != nil {
		input.LoadConfig()
	}

	days := input.Days
	if days == 0 && input.GetConfigInt != nil {
		days = input.GetConfigInt("cleanup_days", 30)
	}

	if days <= 0 {
		return fmt.Errorf("days must be a positive integer")
	}

	if input.Output != nil {
		_, _ = fmt.Fprintf(input.Output, "Starting cleanup of journal entries older than %d days\n", days)
	}

	n, err := u.client.CleanupJournal(ctx, days, input.DryRun)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	if input.Output != nil {
		if input.DryRun {
			_, _ = fmt.Fprintf(input.Output, "Would remove %d entries\n", n)
		} else {
			_, _ = fmt.Fprintf(input.Output, "Removed %d entries\n", n)
		}
		_, _ = fmt.Fprintln(input.Output, "Cleanup completed")
	}

	return nil
}
