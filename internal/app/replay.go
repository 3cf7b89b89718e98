package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/msgstack/internal/scenario"
)

// ReplayClient defines dependencies required by the replay command.
type ReplayClient interface {
	LoadScenario(path string) (*scenario.Scenario, error)
	Replay(sc *scenario.Scenario) scenario.Transcript
}

// ReplayUseCase runs a scenario headless and prints what the queue did.
type ReplayUseCase struct {
	client ReplayClient
}

// NewReplayUseCase creates a replay use-case.
func NewReplayUseCase(client ReplayClient) *ReplayUseCase {
	if client == nil {
		panic("NewReplayUseCase: client dependency cannot be nil")
	}
	return &ReplayUseCase{client: client}
}

// ReplayInput holds parsed replay options.
type ReplayInput struct {
	Scenario string
	// Grep keeps only transcript lines containing this text.
	Grep   string
	Output io.Writer
}

// Execute replays the scenario and writes its transcript to Output.
func (u *ReplayUseCase) Execute(input ReplayInput) error {
	if input.Output == nil {
		return errors.New("replay: output is required")
	}
	sc, err := u.client.LoadScenario(input.Scenario)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	transcript := u.client.Replay(sc)
	if input.Grep != "" {
		var filtered scenario.Transcript
		for _, e := range transcript {
			if strings.Contains(e.Text, input.Grep) {
				filtered = append(filtered, e)
			}
		}
		transcript = filtered
	}

	_, _ = fmt.Fprintf(input.Output, "# %s: %d steps, %d lines\n", sc.Name, len(sc.Steps), len(transcript))
	_, err = io.WriteString(input.Output, transcript.String())
	return err
}
