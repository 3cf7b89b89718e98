package core

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/msgstack/internal/journal"
)

func (c *Core) openJournal() (*journal.Journal, error) {
	j, err := journal.Open(c.journalPath(), journal.WithClock(c.now))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

// History lists journal entries matching f, newest first.
func (c *Core) History(ctx context.Context, f journal.Filter) ([]journal.Entry, error) {
	j, err := c.openJournal()
	if err != nil {
		return nil, err
	}
	defer j.Close()
	return j.List(ctx, f)
}

// Sessions summarizes the recorded sessions, most recent first.
func (c *Core) Sessions(ctx context.Context) ([]journal.SessionSummary, error) {
	j, err := c.openJournal()
	if err != nil {
		return nil, err
	}
	defer j.Close()
	return j.Sessions(ctx)
}

// CleanupJournal removes entries older than days and returns how many were
// (or, with dryRun, would be) removed.
func (c *Core) CleanupJournal(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("days must be a positive integer")
	}
	j, err := c.openJournal()
	if err != nil {
		return 0, err
	}
	defer j.Close()
	return j.Cleanup(ctx, time.Duration(days)*24*time.Hour, dryRun)
}
