// Package errors routes user-facing errors to the console or to the terminal
// host's status line.
package errors

import (
	stderrors "errors"
	"sync"

	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/cristianoliveira/msgstack/internal/messages"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console surface a CLIHandler writes through.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// consoleOutput forwards to the colors package.
type consoleOutput struct{}

func (consoleOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (consoleOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (consoleOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (consoleOutput) Success(msgs ...string) { colors.Success(msgs...) }

// CLIHandler handles errors by printing them with the colors package.
type CLIHandler struct {
	out ColorOutput
	mu  sync.Mutex
}

// NewCLIHandler creates a handler writing through out. Nil uses the console.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	if out == nil {
		out = consoleOutput{}
	}
	return &CLIHandler{out: out}
}

// NewDefaultCLIHandler creates a CLI handler printing to the console.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(nil)
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Success(msg)
}

// Report sends err to h. Rejected duplicate keys are expected during normal
// operation and are reported as warnings; everything else is an error.
func Report(h ErrorHandler, err error) {
	if err == nil || h == nil {
		return
	}
	if stderrors.Is(err, messages.ErrDuplicateKey) {
		h.Warning(err.Error())
		return
	}
	h.Error(err.Error())
}
