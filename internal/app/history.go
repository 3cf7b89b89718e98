package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/msgstack/internal/format"
	"github.com/cristianoliveira/msgstack/internal/journal"
)

// HistoryClient defines dependencies required by the history command.
type HistoryClient interface {
	History(ctx context.Context, f journal.Filter) ([]journal.Entry, error)
	Sessions(ctx context.Context) ([]journal.SessionSummary, error)
}

// HistoryUseCase lists journal entries.
type HistoryUseCase struct {
	client HistoryClient
}

// NewHistoryUseCase creates a history use-case.
func NewHistoryUseCase(client HistoryClient) *HistoryUseCase {
	if client == nil {
		panic("NewHistoryUseCase: client dependency cannot be nil")
	}
	return &HistoryUseCase{client: client}
}

// HistoryInput holds parsed history options.
type HistoryInput struct {
	Session string
	Event   string
	Key     string
	// Since keeps entries newer than this long ago; zero keeps all.
	Since time.Duration
	Limit int
	// Sessions lists session summaries instead of entries.
	Sessions bool
	Format   string
	Output   io.Writer
	Now      func() time.Time
}

// Execute writes the matching entries to Output in the requested format.
func (u *HistoryUseCase) Execute(ctx context.Context, input HistoryInput) error {
	name := strings.ToLower(strings.TrimSpace(input.Format))
	if name == "" {
		name = string(format.FormatterTypeSimple)
	}
	if !format.Valid(name) {
		return fmt.Errorf("invalid format %q: must be one of %s", input.Format, strings.Join(format.Types(), ", "))
	}
	if input.Limit < 0 {
		return fmt.Errorf("limit must be zero or a positive integer")
	}
	if input.Since < 0 {
		return fmt.Errorf("since must not be negative")
	}
	formatter := format.NewFormatter(format.FormatterType(name))
	empty := name != string(format.FormatterTypeJSON)

	if input.Sessions {
		sessions, err := u.client.Sessions(ctx)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		if len(sessions) == 0 && empty {
			_, _ = fmt.Fprintln(input.Output, "No sessions recorded")
			return nil
		}
		return formatter.FormatSessions(sessions, input.Output)
	}

	filter := journal.Filter{
		Session: input.Session,
		Event:   strings.ToLower(input.Event),
		Key:     input.Key,
		Limit:   input.Limit,
	}
	if input.Since > 0 {
		now := time.Now
		if input.Now != nil {
			now = input.Now
		}
		filter.Since = now().Add(-input.Since)
	}
	entries, err := u.client.History(ctx, filter)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(entries) == 0 && empty {
		_, _ = fmt.Fprintln(input.Output, "No events recorded")
		return nil
	}
	return formatter.FormatEntries(entries, input.Output)
}
