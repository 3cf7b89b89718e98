package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	assert.Equal(t, []string{"demo.toml", "stacking.yaml"}, Scenarios())
}

func TestScenario(t *testing.T) {
	data, err := Scenario(DefaultScenario)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name = "demo"`)

	_, err = Scenario("missing.toml")
	assert.Error(t, err)
}
