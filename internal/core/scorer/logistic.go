package scorer

import (
	"math"
	"sync"
)

const (
	DefaultEpochs       = 100
	DefaultLearningRate = 0.01
)

// Example is one labelled training pair. Label is 1 for a match, 0 otherwise.
type Example struct {
	Features map[string]float64 `json:"features"`
	Label    float64            `json:"label"`
}

// LogisticScorer is a linear model over named features squashed by a sigmoid.
// It is illustrative: plain per-example gradient descent, no regularisation.
type LogisticScorer struct {
	mu      sync.RWMutex
	weights map[string]float64
	bias    float64
}

// NewLogisticScorer returns an untrained scorer, which predicts 0.5 for everything.
func NewLogisticScorer() *LogisticScorer {
	return &LogisticScorer{weights: make(map[string]float64)}
}

// NewLogisticScorerWithWeights returns a scorer with fixed parameters.
func NewLogisticScorerWithWeights(weights map[string]float64, bias float64) *LogisticScorer {
	s := NewLogisticScorer()
	for k, v := range weights {
		s.weights[k] = v
	}
	s.bias = bias
	return s
}

func (s *LogisticScorer) Predict(features map[string]float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predict(features)
}

// Train runs epochs passes of gradient descent over examples. Non-positive
// epochs or learningRate fall back to the defaults.
func (s *LogisticScorer) Train(examples []Example, epochs int, learningRate float64) {
	if epochs <= 0 {
		epochs = DefaultEpochs
	}
	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for epoch := 0; epoch < epochs; epoch++ {
		for _, ex := range examples {
			err := s.predict(ex.Features) - ex.Label
			for name, x := range ex.Features {
				s.weights[name] -= learningRate * err * x
			}
			s.bias -= learningRate * err
		}
	}
}

// Weights returns a copy of the learned weights and the bias.
func (s *LogisticScorer) Weights() (map[string]float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.weights))
	for k, v := range s.weights {
		out[k] = v
	}
	return out, s.bias
}

func (s *LogisticScorer) predict(features map[string]float64) float64 {
	z := s.bias
	for name, x := range features {
		z += s.weights[name] * x
	}
	return clamp(sigmoid(z))
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
