// Package stats accumulates engine-wide statistics over reconciliation passes.
package stats

import (
	"sync"

	"github.com/agenthands/recon/internal/core/model"
)

// Aggregator is safe for concurrent use. Each Record call is applied atomically,
// so a Snapshot never observes half of a pass.
type Aggregator struct {
	mu    sync.RWMutex
	stats model.Statistics
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		stats: model.Statistics{CountsByMatchKind: make(map[model.MatchKind]int)},
	}
}

// Record folds one completed pass into the totals. A pass that produced at least
// one result is successful; an empty pass is failed.
func (a *Aggregator) Record(results []model.MatchingResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.TotalAttempts++
	if len(results) == 0 {
		a.stats.FailedAttempts++
		return
	}
	a.stats.SuccessfulAttempts++

	sum := a.stats.RunningAverageConfidence * float64(a.stats.TotalMatches)
	for _, r := range results {
		sum += r.ConfidenceScore
		a.stats.CountsByMatchKind[r.MatchKind]++
	}
	a.stats.TotalMatches += len(results)
	a.stats.RunningAverageConfidence = sum / float64(a.stats.TotalMatches)
}

// Snapshot returns a copy of the current totals.
func (a *Aggregator) Snapshot() model.Statistics {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats.Clone()
}

// Reset zeroes every counter.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats = model.Statistics{CountsByMatchKind: make(map[model.MatchKind]int)}
}
