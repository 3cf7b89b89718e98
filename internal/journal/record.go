package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/msgstack/internal/messages"
)

// Entry is one recorded queue event.
type Entry struct {
	ID        int64
	Session   string
	Event     string
	Key       string
	Title     string
	Level     string
	Position  string
	Timestamp time.Time
}

// Record stores e. Session and Timestamp default to the journal's own.
func (j *Journal) Record(ctx context.Context, e Entry) (int64, error) {
	if !validEvents[e.Event] {
		return 0, fmt.Errorf("journal: record %q: %w", e.Event, ErrInvalidEvent)
	}
	if e.Session == "" {
		e.Session = j.session
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = j.now()
	}
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO events (session, event, msg_key, title, level, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Session, e.Event, e.Key, e.Title, e.Level, e.Position,
		e.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: record event: %w", err)
	}
	return res.LastInsertId()
}

// OnMessageEvent records queue events. Failures are logged and never
// propagate into the queue.
func (j *Journal) OnMessageEvent(ev messages.Event) {
	title, severity := messages.Describe(ev)
	entry := Entry{
		Event:    string(ev.Type),
		Key:      ev.Key,
		Title:    title,
		Level:    severity,
		Position: ev.Position.String(),
	}
	if _, err := j.Record(context.Background(), entry); err != nil {
		j.log.Warn("journal write failed", "event", entry.Event, "key", entry.Key, "error", err)
	}
}
