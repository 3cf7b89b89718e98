package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	assets "github.com/cristianoliveira/msgstack"
	"github.com/cristianoliveira/msgstack/internal/scenario"
)

// LoadScenario loads the scenario at path. An empty path selects the default
// bundled scenario, and a name that is not a file on disk is looked up among
// the bundled ones.
func (c *Core) LoadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		path = assets.DefaultScenario
	}
	sc, err := scenario.Load(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return sc, err
	}

	data, bundledErr := assets.Scenario(filepath.Base(path))
	if bundledErr != nil {
		return nil, err
	}
	sc, err = scenario.Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// BundledScenarios lists the scenario names usable without a file.
func (c *Core) BundledScenarios() []string {
	return assets.Scenarios()
}

// ReplayOptions returns replay settings from the configuration. The scenario
// can turn stacking on.
func ReplayOptions(sc *scenario.Scenario) scenario.ReplayOptions {
	host := HostOptions(sc != nil && sc.Stacking)
	return scenario.ReplayOptions{
		Stacking:      host.Stacking,
		EnterDuration: host.EnterDuration,
		ExitDuration:  host.ExitDuration,
		BackDelay:     host.BackDelay,
	}
}

// Replay runs sc headless and returns its transcript.
func (c *Core) Replay(sc *scenario.Scenario) scenario.Transcript {
	return scenario.Replay(sc, ReplayOptions(sc))
}
