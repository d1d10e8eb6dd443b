package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cohort-sim/cohort-sim/markov"
)

// ModelConfig is the YAML description of a cohort model. Exactly one of
// transition_probabilities or transition_rates must be set; rates also need
// a positive delta_t. Diagonal entries of a rate matrix are ignored.
type ModelConfig struct {
	States                  []string    `yaml:"states"`
	TransitionProbabilities [][]float64 `yaml:"transition_probabilities"`
	TransitionRates         [][]float64 `yaml:"transition_rates"`
	DeltaT                  float64     `yaml:"delta_t"`
	InitialCohort           []int       `yaml:"initial_cohort"`
}

// LoadModelConfig reads and strictly parses a model file: unknown fields are
// errors so typos in keys cannot silently drop configuration.
func LoadModelConfig(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	var cfg ModelConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}

	if len(cfg.TransitionProbabilities) > 0 && len(cfg.TransitionRates) > 0 {
		return nil, fmt.Errorf("model file sets both transition_probabilities and transition_rates; use one")
	}
	if len(cfg.TransitionProbabilities) == 0 && len(cfg.TransitionRates) == 0 {
		return nil, fmt.Errorf("model file sets neither transition_probabilities nor transition_rates")
	}
	if len(cfg.TransitionRates) > 0 && cfg.DeltaT <= 0 {
		return nil, fmt.Errorf("transition_rates requires a positive delta_t, got %v", cfg.DeltaT)
	}
	return &cfg, nil
}

// Labels returns the declared state labels, or nil when the model file does
// not name its states.
func (c *ModelConfig) Labels() []markov.StateLabel {
	if len(c.States) == 0 {
		return nil
	}
	return markov.Labels(c.States...)
}

// BuildCohort constructs the cohort simulator the model file describes.
// For a rate-driven model the second return value is the conversion's upper
// bound on the within-step double-jump probability; it is 0 for a model
// given directly as probabilities.
func (c *ModelConfig) BuildCohort() (*markov.CohortMarkov, float64, error) {
	if len(c.TransitionRates) > 0 {
		ct, err := markov.NewContinuousTimeCohortMarkov(
			markov.RateMatrixOf(c.TransitionRates), c.DeltaT, c.Labels())
		if err != nil {
			return nil, 0, err
		}
		return ct.CohortMarkov, ct.DoubleJumpUpperBound(), nil
	}
	cohort, err := markov.NewCohortMarkov(c.TransitionProbabilities, c.Labels())
	return cohort, 0, err
}
