package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/msgstack/internal/scenario"
	"github.com/cristianoliveira/msgstack/internal/tui"
)

// loopPause separates the rounds of a looping demo.
const loopPause = 2 * time.Second

// DemoClient defines dependencies required by the demo command.
type DemoClient interface {
	LoadScenario(path string) (*scenario.Scenario, error)
	RunHost(ctx context.Context, stacking bool, producers ...tui.Producer) error
}

// DemoUseCase plays a scenario in the terminal host.
type DemoUseCase struct {
	client DemoClient
}

// NewDemoUseCase creates a demo use-case.
func NewDemoUseCase(client DemoClient) *DemoUseCase {
	if client == nil {
		panic("NewDemoUseCase: client dependency cannot be nil")
	}
	return &DemoUseCase{client: client}
}

// DemoInput holds parsed demo options.
type DemoInput struct {
	// Scenario is a file path or bundled scenario name; empty plays the default.
	Scenario string
	Stacking bool
	// Loop replays the scenario until the host quits.
	Loop bool
}

// Execute loads the scenario and runs the host until the user quits.
func (u *DemoUseCase) Execute(ctx context.Context, input DemoInput) error {
	sc, err := u.client.LoadScenario(input.Scenario)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	producer := tui.Producer{
		Name: "scenario " + sc.Name,
		Run: func(ctx context.Context, sink scenario.Sink) error {
			for {
				if err := scenario.Play(ctx, sc, sink); err != nil || !input.Loop {
					return err
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(loopPause):
				}
				sink.DismissAll()
			}
		},
	}
	return u.client.RunHost(ctx, input.Stacking || sc.Stacking, producer)
}
