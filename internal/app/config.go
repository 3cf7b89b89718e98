package app

import (
	"fmt"
	"io"
	"sort"
)

// ConfigClient defines dependencies required by config commands.
type ConfigClient interface {
	WriteSampleConfig(path string) (string, error)
	ConfigValues() map[string]string
	ConfigPath() string
}

// ConfigUseCase coordinates config command behavior.
type ConfigUseCase struct {
	client ConfigClient
}

// NewConfigUseCase creates a config use-case.
func NewConfigUseCase(client ConfigClient) *ConfigUseCase {
	if client == nil {
		panic("NewConfigUseCase: client dependency cannot be nil")
	}
	return &ConfigUseCase{client: client}
}

// Init writes a sample config file and reports where it went.
func (u *ConfigUseCase) Init(path string, output io.Writer) error {
	written, err := u.client.WriteSampleConfig(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	_, _ = fmt.Fprintf(output, "Wrote %s\n", written)
	return nil
}

// Show prints the effective configuration as sorted key = value lines.
func (u *ConfigUseCase) Show(output io.Writer) error {
	if path := u.client.ConfigPath(); path != "" {
		_, _ = fmt.Fprintf(output, "# loaded from %s\n", path)
	} else {
		_, _ = fmt.Fprintln(output, "# no config file, using defaults and environment")
	}

	values := u.client.ConfigValues()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(output, "%s = %q\n", k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
