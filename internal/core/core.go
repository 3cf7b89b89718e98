// Package core is the concrete client behind the CLI commands. It reads the
// global configuration and wires the queue host to the journal, hooks and
// metrics.
package core

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cristianoliveira/msgstack/internal/config"
	"github.com/cristianoliveira/msgstack/internal/journal"
	"github.com/cristianoliveira/msgstack/internal/tui"
	"github.com/cristianoliveira/msgstack/internal/version"
)

// Core implements the operations used by the commands.
type Core struct {
	// run starts the terminal host; replaced in tests.
	run func(ctx context.Context, m *tui.Model, producers ...tui.Producer) error
	// journalPath locates the journal database.
	journalPath func() string
	now         func() time.Time
}

// NewCore creates a Core using the terminal host and the configured journal.
func NewCore() *Core {
	return &Core{
		run:         tui.Run,
		journalPath: journal.DefaultPath,
		now:         time.Now,
	}
}

// Version returns the build version.
func (c *Core) Version() string {
	return version.String()
}

// WriteSampleConfig writes a commented default config file to path, or to
// {config_dir}/config.toml when path is empty. It returns the path written.
func (c *Core) WriteSampleConfig(path string) (string, error) {
	if path == "" {
		path = defaultConfigPath()
	}
	if err := config.WriteSample(path); err != nil {
		return "", err
	}
	return path, nil
}

// ConfigValues returns every effective configuration value, keyed by name.
func (c *Core) ConfigValues() map[string]string {
	values := make(map[string]string)
	for _, k := range config.Keys() {
		values[k] = config.Get(k, "")
	}
	return values
}

// ConfigPath returns the file the configuration was loaded from, or "".
func (c *Core) ConfigPath() string {
	return config.Path()
}

func defaultConfigPath() string {
	return filepath.Join(config.Get("config_dir", ""), "config"+config.FileExtTOML)
}
