package app

import (
	"context"
	"errors"
	"strings"

	"github.com/cristianoliveira/msgstack/internal/inbox"
	"github.com/cristianoliveira/msgstack/internal/scenario"
	"github.com/cristianoliveira/msgstack/internal/tui"
)

// WatchClient defines dependencies required by the watch command.
type WatchClient interface {
	RunHost(ctx context.Context, stacking bool, producers ...tui.Producer) error
}

// WatchUseCase feeds the terminal host from an inbox directory.
type WatchUseCase struct {
	client WatchClient
}

// NewWatchUseCase creates a watch use-case.
func NewWatchUseCase(client WatchClient) *WatchUseCase {
	if client == nil {
		panic("NewWatchUseCase: client dependency cannot be nil")
	}
	return &WatchUseCase{client: client}
}

// WatchInput holds parsed watch options.
type WatchInput struct {
	Dir      string
	Stacking bool
}

// Execute runs the host with an inbox watcher as its producer.
func (u *WatchUseCase) Execute(ctx context.Context, input WatchInput) error {
	dir := strings.TrimSpace(input.Dir)
	if dir == "" {
		return errors.New("watch: directory is required")
	}
	return u.client.RunHost(ctx, input.Stacking, InboxProducer(dir))
}

// InboxProducer returns a producer that watches dir until the host stops.
func InboxProducer(dir string) tui.Producer {
	return tui.Producer{
		Name: "inbox " + dir,
		Run: func(ctx context.Context, sink scenario.Sink) error {
			w, err := inbox.New(dir, sink)
			if err != nil {
				return err
			}
			return w.Run(ctx, nil)
		},
	}
}
