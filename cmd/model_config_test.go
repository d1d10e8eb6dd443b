package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cohort-sim/cohort-sim/markov"
	"github.com/cohort-sim/cohort-sim/markov/randvar"
)

func writeModelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadModelConfig_ProbabilityModel(t *testing.T) {
	path := writeModelFile(t, `
states: [Well, Sick]
transition_probabilities:
  - [0.7, 0.3]
  - [0.4, 0.6]
initial_cohort: [100, 0]
`)

	cfg, err := LoadModelConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Well", "Sick"}, cfg.States)
	assert.Equal(t, []int{100, 0}, cfg.InitialCohort)

	cohort, doubleJump, err := cfg.BuildCohort()
	require.NoError(t, err)
	assert.Zero(t, doubleJump)

	require.NoError(t, cohort.Simulate(cfg.InitialCohort, 5, randvar.New(1)))
	series, err := cohort.StateSizeOverTime(markov.ByLabel("Well"))
	require.NoError(t, err)
	assert.Len(t, series, 6)
}

func TestLoadModelConfig_RateModel(t *testing.T) {
	path := writeModelFile(t, `
states: [Sick, Dead]
transition_rates:
  - [0, 0.2]
  - [0, 0]
delta_t: 0.5
initial_cohort: [100, 0]
`)

	cfg, err := LoadModelConfig(path)
	require.NoError(t, err)

	cohort, doubleJump, err := cfg.BuildCohort()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, doubleJump, 0.0)
	assert.Equal(t, 2, cohort.NumStates())
}

func TestLoadModelConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown field",
			content: `
transition_probabilities: [[1.0]]
initial_cohorts: [10]
`,
		},
		{
			name: "both matrices",
			content: `
transition_probabilities: [[1.0]]
transition_rates: [[0]]
delta_t: 1
`,
		},
		{
			name:    "neither matrix",
			content: `states: [Well]`,
		},
		{
			name: "rates without delta_t",
			content: `
transition_rates:
  - [0, 1]
  - [0, 0]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadModelConfig(writeModelFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadModelConfig_MissingFile(t *testing.T) {
	_, err := LoadModelConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
