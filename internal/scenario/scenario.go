// Package scenario loads scripted message sequences and plays them against a
// queue, either live through a Sink or headless with a recorded transcript.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/msgstack/internal/banner"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Action is what a step does to the queue.
type Action string

const (
	ActionEnqueue    Action = "enqueue"
	ActionDismiss    Action = "dismiss"
	ActionDismissAll Action = "dismiss-all"
	ActionSuspend    Action = "suspend"
	ActionResume     Action = "resume"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported scenario format")
	ErrNoSteps           = errors.New("scenario has no steps")
	ErrUnknownAction     = errors.New("unknown action")
	ErrMissingKey        = errors.New("key is required")
	ErrMissingTitle      = errors.New("title is required")
	ErrUnknownKey        = errors.New("key was never enqueued")
	ErrStepOrder         = errors.New("steps must be ordered by time")
	ErrInvalidDuration   = errors.New("invalid duration")
)

// Step is one timed action.
type Step struct {
	// At is the offset from the start of the scenario.
	At          time.Duration
	Action      Action
	Key         string
	Title       string
	Description string
	Level       banner.Level
	AutoDismiss time.Duration
}

// Options returns the banner options of an enqueue step.
func (s Step) Options() banner.Options {
	return banner.Options{
		Title:       s.Title,
		Description: s.Description,
		Level:       s.Level,
		AutoDismiss: s.AutoDismiss,
	}
}

// Scenario is a validated list of steps.
type Scenario struct {
	Name     string
	Stacking bool
	Steps    []Step
}

// Duration returns the offset of the last step.
func (s *Scenario) Duration() time.Duration {
	if len(s.Steps) == 0 {
		return 0
	}
	return s.Steps[len(s.Steps)-1].At
}

type rawScenario struct {
	Name     string    `toml:"name" yaml:"name"`
	Stacking bool      `toml:"stacking" yaml:"stacking"`
	Steps    []rawStep `toml:"steps" yaml:"steps"`
}

type rawStep struct {
	At          string `toml:"at" yaml:"at"`
	Action      string `toml:"action" yaml:"action"`
	Key         string `toml:"key" yaml:"key"`
	Title       string `toml:"title" yaml:"title"`
	Description string `toml:"description" yaml:"description"`
	Level       string `toml:"level" yaml:"level"`
	AutoDismiss string `toml:"autodismiss" yaml:"autodismiss"`
}

// Load reads a scenario file. The format follows the extension.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	sc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes and validates a scenario. format is "toml", "yaml" or "yml",
// with or without a leading dot.
func Parse(data []byte, format string) (*Scenario, error) {
	var raw rawScenario
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return build(raw)
}

func build(raw rawScenario) (*Scenario, error) {
	if len(raw.Steps) == 0 {
		return nil, ErrNoSteps
	}
	sc := &Scenario{Name: raw.Name, Stacking: raw.Stacking}
	enqueued := make(map[string]bool)
	suspended := make(map[string]bool)
	var last time.Duration

	for i, rs := range raw.Steps {
		st, err := buildStep(rs)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if st.At < last {
			return nil, fmt.Errorf("step %d: %w: %s comes after %s", i+1, ErrStepOrder, st.At, last)
		}
		last = st.At

		switch st.Action {
		case ActionEnqueue:
			enqueued[st.Key] = true
		case ActionDismiss:
			if !enqueued[st.Key] {
				return nil, fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownKey, st.Key)
			}
		case ActionSuspend:
			suspended[st.Key] = true
		case ActionResume:
			if st.Key != "" && !suspended[st.Key] {
				return nil, fmt.Errorf("step %d: %w: suspension %q", i+1, ErrUnknownKey, st.Key)
			}
		}
		sc.Steps = append(sc.Steps, st)
	}
	return sc, nil
}

func buildStep(rs rawStep) (Step, error) {
	at, err := parseDuration("at", rs.At)
	if err != nil {
		return Step{}, err
	}
	st := Step{
		At:          at,
		Action:      Action(strings.ToLower(strings.TrimSpace(rs.Action))),
		Key:         strings.TrimSpace(rs.Key),
		Title:       rs.Title,
		Description: rs.Description,
	}

	switch st.Action {
	case ActionEnqueue:
		if strings.TrimSpace(st.Title) == "" {
			return Step{}, ErrMissingTitle
		}
		if st.Key == "" {
			st.Key = uuid.NewString()
		}
		if st.Level, err = banner.ParseLevel(rs.Level); err != nil {
			return Step{}, err
		}
		if st.AutoDismiss, err = parseDuration("autodismiss", rs.AutoDismiss); err != nil {
			return Step{}, err
		}
	case ActionDismiss:
		if st.Key == "" {
			return Step{}, ErrMissingKey
		}
	case ActionSuspend:
		if st.Key == "" {
			st.Key = uuid.NewString()
		}
	case ActionResume, ActionDismissAll:
	default:
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownAction, rs.Action)
	}
	return st, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w for %s: %q", ErrInvalidDuration, field, value)
	}
	return d, nil
}
