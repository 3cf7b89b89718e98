package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/cristianoliveira/msgstack/internal/scenario"
)

// Producer feeds a running host through sink until it is done or ctx ends.
type Producer struct {
	Name string
	Run  func(ctx context.Context, sink scenario.Sink) error
}

// Run starts the program and the producers, and blocks until the user quits
// or ctx is canceled.
func Run(ctx context.Context, m *Model, producers ...Producer) error {
	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	sink := NewSendSink(p.Send)
	for _, prod := range producers {
		go func() {
			err := prod.Run(ctx, sink)
			if ctx.Err() != nil {
				return
			}
			p.Send(ProducerDoneMsg{Name: prod.Name, Err: err})
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal host: %w", err)
	}
	return nil
}
