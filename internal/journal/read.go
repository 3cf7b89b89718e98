package journal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Filter selects journal entries. Zero fields match everything.
type Filter struct {
	Session string
	Event   string
	Key     string
	Since   time.Time
	// Limit caps the number of entries returned; zero means no cap.
	Limit int
}

// List returns matching entries, newest first.
func (j *Journal) List(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Event != "" && !validEvents[f.Event] {
		return nil, fmt.Errorf("journal: list: %w: %q", ErrInvalidEvent, f.Event)
	}
	if f.Limit < 0 {
		return nil, fmt.Errorf("journal: list: %w: %d", ErrInvalidLimit, f.Limit)
	}

	var (
		where []string
		args  []any
	)
	if f.Session != "" {
		where = append(where, "session = ?")
		args = append(args, f.Session)
	}
	if f.Event != "" {
		where = append(where, "event = ?")
		args = append(args, f.Event)
	}
	if f.Key != "" {
		where = append(where, "msg_key = ?")
		args = append(args, f.Key)
	}
	if !f.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, f.Since.UTC().Format(timeLayout))
	}

	query := "SELECT id, session, event, msg_key, title, level, position, created_at FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.Event, &e.Key, &e.Title, &e.Level, &e.Position, &created); err != nil {
			return nil, fmt.Errorf("journal: scan entry: %w", err)
		}
		e.Timestamp, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("journal: parse timestamp %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	return entries, nil
}

// SessionSummary aggregates one session's entries.
type SessionSummary struct {
	Session string
	Events  int
	First   time.Time
	Last    time.Time
}

// Sessions summarizes every recorded session, most recent first.
func (j *Journal) Sessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT session, COUNT(*), MIN(created_at), MAX(created_at)
		 FROM events GROUP BY session ORDER BY MAX(id) DESC`)
	if err != nil {
		return nil, fmt.Errorf("journal: sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			s           SessionSummary
			first, last string
		)
		if err := rows.Scan(&s.Session, &s.Events, &first, &last); err != nil {
			return nil, fmt.Errorf("journal: scan session: %w", err)
		}
		if s.First, err = time.Parse(timeLayout, first); err != nil {
			return nil, fmt.Errorf("journal: parse timestamp %q: %w", first, err)
		}
		if s.Last, err = time.Parse(timeLayout, last); err != nil {
			return nil, fmt.Errorf("journal: parse timestamp %q: %w", last, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
