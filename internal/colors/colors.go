// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled bool
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("MSGSTACK_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugEnabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the process streams.
// The returned function restores the previous writers.
func SetOutput(out, errOut io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevErr := stdout, stderr
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
	return func() {
		mu.Lock()
		defer mu.Unlock()
		stdout, stderr = prevOut, prevErr
	}
}

// ColorNumber extracts the ANSI color number from an escape sequence such as
// Blue, for use with terminal styling libraries.
func ColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

// emit writes one console line and mirrors it to the structured logger.
func emit(lvl level, toStderr bool, line string, msg string, args ...any) {
	mu.RLock()
	l := logger
	w := stdout
	if toStderr {
		w = stderr
	}
	mu.RUnlock()

	if l != nil {
		switch lvl {
		case levelDebug:
			l.Debug(msg, args...)
		case levelInfo:
			l.Info(msg, args...)
		case levelWarn:
			l.Warn(msg, args...)
		case levelError:
			l.Error(msg, args...)
		}
	}
	if _, err := fmt.Fprintln(w, line); err != nil && lvl != levelError {
		// Last resort; never recurse back into emit.
		fmt.Fprintf(os.Stderr, "Error: failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	emit(levelError, true, fmt.Sprintf("%sError:%s %s", Red, Reset, msg), msg)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	emit(levelInfo, false, fmt.Sprintf("%s%s%s %s", Green, checkmark, Reset, msg), msg, "type", "success")
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	emit(levelWarn, true, fmt.Sprintf("%sWarning:%s %s", Yellow, Reset, msg), msg)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	emit(levelInfo, false, fmt.Sprintf("%s%s%s", Blue, msg, Reset), msg)
}

// LogInfo outputs an informational message to stderr, keeping stdout clean
// for command output.
func LogInfo(msgs ...string) {
	msg := strings.Join(msgs, " ")
	emit(levelInfo, true, fmt.Sprintf("%s%s%s", Blue, msg, Reset), msg)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !DebugEnabled() {
		return
	}
	msg := strings.Join(msgs, " ")
	emit(levelDebug, true, fmt.Sprintf("%sDebug:%s %s", Cyan, Reset, msg), msg)
}
