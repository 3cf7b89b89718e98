// Package logging provides structured file logging for msgstack.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/msgstack/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Enabled bool
	// Level is the minimum level recorded: debug, info, warn or error.
	Level string
	// MaxFiles is how many log files are kept in Dir.
	MaxFiles int
	// Dir is where log files are written. Empty means LogDir's choice.
	Dir string
	// Command and PID are stamped on every entry and in the file name.
	Command string
	PID     int
}

// DefaultConfig returns a disabled Config with default values.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig creates a logging Config from the global configuration.
// The debug flag forces the debug level; quiet lowers it to errors only.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", "info")
	cfg.MaxFiles = config.GetInt("logging_max_files", 10)
	switch {
	case config.GetBool("debug", false):
		cfg.Level = "debug"
	case config.GetBool("quiet", false):
		cfg.Level = "error"
	}
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		cfg.Dir = filepath.Join(stateDir, "logs")
	}
	return cfg
}

// LogDir returns the directory log files go to: dir when it can be created
// and written, otherwise {os.TempDir()}/msgstack/logs.
func LogDir(dir string) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0700); err == nil && writable(dir) {
			return dir, nil
		}
	}
	fallback := filepath.Join(os.TempDir(), "msgstack", "logs")
	if err := os.MkdirAll(fallback, 0700); err != nil {
		return "", err
	}
	return fallback, nil
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
