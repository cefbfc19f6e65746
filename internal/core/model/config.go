package model

import "sort"

const (
	// DefaultAlgorithm is used for fields with no algorithm selection.
	DefaultAlgorithm = "levenshtein"

	// DefaultFieldThreshold is used for fields with no configured threshold.
	DefaultFieldThreshold = 0.8
)

// ReconciliationConfig drives a single reconciliation pass.
type ReconciliationConfig struct {
	MatchingFields          []string           `json:"matching_fields" toml:"matching_fields" yaml:"matching_fields"`
	FieldThresholds         map[string]float64 `json:"field_thresholds" toml:"field_thresholds" yaml:"field_thresholds"`
	MinConfidenceThreshold  float64            `json:"min_confidence_threshold" toml:"min_confidence_threshold" yaml:"min_confidence_threshold"`
	FuzzyAlgorithmSelection map[string]string  `json:"fuzzy_algorithm_selection" toml:"fuzzy_algorithm_selection" yaml:"fuzzy_algorithm_selection"`
	ModelName               string             `json:"model_name,omitempty" toml:"model_name" yaml:"model_name,omitempty"`
	MaxMatchesPerRecord     int                `json:"max_matches_per_record" toml:"max_matches_per_record" yaml:"max_matches_per_record"`
}

// FieldThreshold returns the minimum similarity for field to count as matching.
func (c ReconciliationConfig) FieldThreshold(field string) float64 {
	if t, ok := c.FieldThresholds[field]; ok {
		return t
	}
	return DefaultFieldThreshold
}

// AlgorithmName returns the registry name of the algorithm used for field.
func (c ReconciliationConfig) AlgorithmName(field string) string {
	if name, ok := c.FuzzyAlgorithmSelection[field]; ok && name != "" {
		return name
	}
	return DefaultAlgorithm
}

// Clone returns a copy whose slices and maps are not shared with c.
func (c ReconciliationConfig) Clone() ReconciliationConfig {
	out := c
	out.MatchingFields = append([]string(nil), c.MatchingFields...)
	if c.FieldThresholds != nil {
		out.FieldThresholds = make(map[string]float64, len(c.FieldThresholds))
		for k, v := range c.FieldThresholds {
			out.FieldThresholds[k] = v
		}
	}
	if c.FuzzyAlgorithmSelection != nil {
		out.FuzzyAlgorithmSelection = make(map[string]string, len(c.FuzzyAlgorithmSelection))
		for k, v := range c.FuzzyAlgorithmSelection {
			out.FuzzyAlgorithmSelection[k] = v
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedAlgorithmFields lists the fields with an explicit algorithm selection in
// a stable order, so validation errors are deterministic.
func (c ReconciliationConfig) SortedAlgorithmFields() []string {
	return sortedKeys(c.FuzzyAlgorithmSelection)
}
