package ritual

import (
	"encoding/json"
	"fmt"
	"os"
)

// FallbackState is the weight table entry used when the classifier reports a
// state that has no row of its own.
const FallbackState = "unknown"

// WeightTable maps a user emotional state to a sampling distribution over
// step types. Weights are relative, not normalized.
type WeightTable map[string]map[string]float64

// DefaultWeightTable covers the mental states the classifier is prompted
// with. Tuned by hand; overridable from a JSON file via Load.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		"Anxiety and Overwhelm": {
			"breathing":     5,
			"grounding":     4,
			"journaling":    2,
			"affirmation":   2,
			"visualization": 1,
		},
		"Low Motivation / Apathy": {
			"movement":    5,
			"affirmation": 3,
			"gratitude":   2,
			"journaling":  2,
		},
		"Burnout": {
			"breathing":  4,
			"rest":       4,
			"gratitude":  2,
			"journaling": 2,
		},
		"Sadness": {
			"gratitude":   4,
			"journaling":  3,
			"affirmation": 3,
			"movement":    1,
		},
		"Self-Doubt or Insecurity": {
			"affirmation":   5,
			"journaling":    3,
			"visualization": 2,
		},
		"Social Withdrawal": {
			"journaling":  3,
			"movement":    3,
			"affirmation": 2,
			"gratitude":   2,
		},
		"Procrastination Loop": {
			"movement":      4,
			"breathing":     3,
			"visualization": 2,
			"journaling":    1,
		},
		"Inner Critic or Shame": {
			"affirmation": 5,
			"journaling":  3,
			"breathing":   2,
		},
		"Fear of Failure": {
			"visualization": 4,
			"affirmation":   3,
			"breathing":     2,
			"journaling":    1,
		},
		"Decision Fatigue": {
			"breathing":  4,
			"grounding":  3,
			"rest":       2,
			"journaling": 1,
		},
		FallbackState: {
			"breathing":   4,
			"journaling":  3,
			"affirmation": 2,
			"gratitude":   1,
		},
	}
}

// Load reads a weight table from a JSON file. Entries override the defaults
// per state; states absent from the file keep their default row.
func Load(path string) (WeightTable, error) {
	table := DefaultWeightTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weight table: %w", err)
	}

	var overrides WeightTable
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse weight table: %w", err)
	}

	for state, weights := range overrides {
		table[state] = weights
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks the invariants the sampler depends on: a fallback row must
// exist and every weight must be non-negative.
func (t WeightTable) Validate() error {
	if _, ok := t[FallbackState]; !ok {
		return fmt.Errorf("weight table missing fallback state %q", FallbackState)
	}
	for state, weights := range t {
		if len(weights) == 0 {
			return fmt.Errorf("weight table state %q has no step types", state)
		}
		for stepType, w := range weights {
			if w < 0 {
				return fmt.Errorf("negative weight for %s/%s", state, stepType)
			}
		}
	}
	return nil
}

// Resolve returns the distribution for state, falling back to the designated
// fallback row when the state is unmapped.
func (t WeightTable) Resolve(state string) map[string]float64 {
	if weights, ok := t[state]; ok {
		return weights
	}
	return t[FallbackState]
}
