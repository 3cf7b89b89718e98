// Package journal records queue events in a SQLite database so past sessions
// can be inspected after the terminal host exits.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/msgstack/internal/config"
	"github.com/cristianoliveira/msgstack/internal/logging"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidEvent indicates an event name outside the known set.
	ErrInvalidEvent = errors.New("invalid event type")
	// ErrInvalidLimit indicates a negative list limit.
	ErrInvalidLimit = errors.New("invalid limit")
)

var validEvents = map[string]bool{
	"enqueued":  true,
	"shown":     true,
	"hidden":    true,
	"dismissed": true,
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT NOT NULL,
	event      TEXT NOT NULL,
	msg_key    TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	level      TEXT NOT NULL DEFAULT '',
	position   TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_session ON events(session);
CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
`

// Journal is a SQLite-backed event log scoped to one session.
type Journal struct {
	db      *sql.DB
	session string
	now     func() time.Time
	log     logging.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithSession sets the session id instead of a generated UUID.
func WithSession(id string) Option {
	return func(j *Journal) {
		if id != "" {
			j.session = id
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		j.now = now
	}
}

// WithLogger sets where recording failures are reported.
func WithLogger(l logging.Logger) Option {
	return func(j *Journal) {
		j.log = l
	}
}

// DefaultPath returns {state_dir}/journal.db.
func DefaultPath() string {
	return filepath.Join(config.Get("state_dir", ""), "journal.db")
}

// Open opens or creates the journal database at dbPath.
func Open(dbPath string, opts ...Option) (*Journal, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("journal: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("journal: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	// modernc's driver serializes writers; one connection avoids SQLITE_BUSY
	// between the observer and the history queries.
	db.SetMaxOpenConns(1)

	j := &Journal{
		db:      db,
		session: uuid.NewString(),
		now:     time.Now,
		log:     logging.GetGlobal(),
	}
	for _, opt := range opts {
		opt(j)
	}
	if err := j.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) init() error {
	if _, err := j.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("journal: set busy timeout: %w", err)
	}
	if _, err := j.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("journal: create schema: %w", err)
	}
	return nil
}

// Session returns the id stamped on entries recorded by this journal.
func (j *Journal) Session() string {
	return j.session
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
