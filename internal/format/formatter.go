// Package format renders journal entries for the history command.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/msgstack/internal/journal"
)

// Formatter writes journal entries and session summaries.
type Formatter interface {
	// FormatEntries writes entries in the order given.
	FormatEntries(entries []journal.Entry, writer io.Writer) error
	// FormatSessions writes session summaries in the order given.
	FormatSessions(sessions []journal.SessionSummary, writer io.Writer) error
}

// FormatterType names an output style.
type FormatterType string

const (
	// FormatterTypeSimple prints one line per entry.
	FormatterTypeSimple FormatterType = "simple"
	// FormatterTypeTable prints aligned columns under a header.
	FormatterTypeTable FormatterType = "table"
	// FormatterTypeJSON prints a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// Types lists the accepted formatter names.
func Types() []string {
	return []string{string(FormatterTypeSimple), string(FormatterTypeTable), string(FormatterTypeJSON)}
}

// Valid reports whether name is one of Types.
func Valid(name string) bool {
	for _, t := range Types() {
		if t == name {
			return true
		}
	}
	return false
}

// NewFormatter returns the formatter for t. Unknown types fall back to simple.
func NewFormatter(t FormatterType) Formatter {
	switch t {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return jsonFormatter{}
	default:
		return simpleFormatter{}
	}
}

const timeFormat = "2006-01-02 15:04:05"

func displayTime(t time.Time) string {
	return t.Local().Format(timeFormat)
}

type simpleFormatter struct{}

func (simpleFormatter) FormatEntries(entries []journal.Entry, writer io.Writer) error {
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-9s %s", displayTime(e.Timestamp), e.Event, e.Key)
		if e.Title != "" {
			line += "  " + e.Title
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}

func (simpleFormatter) FormatSessions(sessions []journal.SessionSummary, writer io.Writer) error {
	for _, s := range sessions {
		if _, err := fmt.Fprintf(writer, "%s  %d events  %s .. %s\n",
			s.Session, s.Events, displayTime(s.First), displayTime(s.Last)); err != nil {
			return err
		}
	}
	return nil
}

type jsonEntry struct {
	ID        int64  `json:"id"`
	Session   string `json:"session"`
	Event     string `json:"event"`
	Key       string `json:"key"`
	Title     string `json:"title,omitempty"`
	Level     string `json:"level,omitempty"`
	Position  string `json:"position,omitempty"`
	Timestamp string `json:"timestamp"`
}

type jsonSession struct {
	Session string `json:"session"`
	Events  int    `json:"events"`
	First   string `json:"first"`
	Last    string `json:"last"`
}

type jsonFormatter struct{}

func (jsonFormatter) FormatEntries(entries []journal.Entry, writer io.Writer) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			ID:        e.ID,
			Session:   e.Session,
			Event:     e.Event,
			Key:       e.Key,
			Title:     e.Title,
			Level:     e.Level,
			Position:  e.Position,
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}
	return writeJSON(writer, out)
}

func (jsonFormatter) FormatSessions(sessions []journal.SessionSummary, writer io.Writer) error {
	out := make([]jsonSession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, jsonSession{
			Session: s.Session,
			Events:  s.Events,
			First:   s.First.UTC().Format(time.RFC3339Nano),
			Last:    s.Last.UTC().Format(time.RFC3339Nano),
		})
	}
	return writeJSON(writer, out)
}

func writeJSON(writer io.Writer, v any) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
