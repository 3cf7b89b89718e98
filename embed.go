// Package assets provides the scenarios bundled with msgstack.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultScenario is played by the demo command when no file is given.
const DefaultScenario = "demo.toml"

//go:embed scenarios
var FS embed.FS

// Scenario returns the contents of a bundled scenario by file name.
func Scenario(name string) ([]byte, error) {
	data, err := fs.ReadFile(FS, path.Join("scenarios", name))
	if err != nil {
		return nil, fmt.Errorf("bundled scenario %q: %w", name, err)
	}
	return data, nil
}

// Scenarios lists the bundled scenario file names.
func Scenarios() []string {
	entries, err := fs.ReadDir(FS, "scenarios")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
