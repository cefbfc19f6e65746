// Package scorer provides pluggable models that turn per-field similarity
// features into a match confidence.
package scorer

import "context"

// Scorer predicts a match confidence in [0, 1] from named features.
// Implementations must be safe for concurrent use.
type Scorer interface {
	Predict(features map[string]float64) float64
}

// ContextScorer is a Scorer whose predictions can be cancelled. The matcher
// hands such scorers the context of the running pass.
type ContextScorer interface {
	Scorer
	PredictContext(ctx context.Context, features map[string]float64) float64
}

// Func adapts a plain function to the Scorer interface.
type Func func(features map[string]float64) float64

func (f Func) Predict(features map[string]float64) float64 {
	return f(features)
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
