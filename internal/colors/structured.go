package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

var structuredDisabled atomic.Bool

// StructuredLogLevel represents log level for structured logs.
type StructuredLogLevel string

const (
	LevelDebug StructuredLogLevel = "debug"
	LevelInfo  StructuredLogLevel = "info"
	LevelWarn  StructuredLogLevel = "warn"
	LevelError StructuredLogLevel = "error"
)

// StructuredLogEntry is one JSON line written to stderr in debug mode.
type StructuredLogEntry struct {
	Timestamp string             `json:"timestamp"`
	Level     StructuredLogLevel `json:"level"`
	Component string             `json:"component"`
	Action    string             `json:"action"`
	Status    string             `json:"status"`
	Error     string             `json:"error,omitempty"`
	Key       string             `json:"key,omitempty"`
	Fields    map[string]any     `json:"fields,omitempty"`
}

// DisableStructuredLogging turns off structured output. The terminal host
// calls it because JSON lines would corrupt the rendered screen.
func DisableStructuredLogging() {
	structuredDisabled.Store(true)
}

// EnableStructuredLogging turns structured output back on.
func EnableStructuredLogging() {
	structuredDisabled.Store(false)
}

// StructuredLog writes a structured entry to stderr when debug mode is on.
func StructuredLog(level StructuredLogLevel, component, action, status string, err error, key string, fields map[string]any) {
	if !DebugEnabled() || structuredDisabled.Load() {
		return
	}

	entry := StructuredLogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: component,
		Action:    action,
		Status:    status,
		Key:       key,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal structured log: %v\n", marshalErr)
		return
	}

	mu.RLock()
	w := stderr
	mu.RUnlock()
	fmt.Fprintf(w, "%s\n", data)
}

// StructuredInfo logs a structured info entry.
func StructuredInfo(component, action, status string, err error, key string, fields map[string]any) {
	StructuredLog(LevelInfo, component, action, status, err, key, fields)
}

// StructuredError logs a structured error entry.
func StructuredError(component, action, status string, err error, key string, fields map[string]any) {
	StructuredLog(LevelError, component, action, status, err, key, fields)
}
