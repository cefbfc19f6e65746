package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/recon/internal/core/model"
)

func result(confidence float64) model.MatchingResult {
	return model.MatchingResult{ConfidenceScore: confidence, MatchKind: model.ClassifyMatch(confidence)}
}

func TestAggregator(t *testing.T) {
	a := NewAggregator()

	s := a.Snapshot()
	assert.Equal(t, 0, s.TotalAttempts)
	assert.Equal(t, 0.0, s.RunningAverageConfidence)
	assert.Empty(t, s.CountsByMatchKind)

	a.Record([]model.MatchingResult{result(1.0), result(0.8)})
	a.Record(nil)
	a.Record([]model.MatchingResult{result(0.6)})

	s = a.Snapshot()
	assert.Equal(t, 3, s.TotalAttempts)
	assert.Equal(t, 2, s.SuccessfulAttempts)
	assert.Equal(t, 1, s.FailedAttempts)
	assert.Equal(t, 3, s.TotalMatches)
	assert.InDelta(t, 0.8, s.RunningAverageConfidence, 1e-9)
	assert.Equal(t, map[model.MatchKind]int{
		model.MatchExact:         1,
		model.MatchFuzzy:         1,
		model.MatchProbabilistic: 1,
	}, s.CountsByMatchKind)
}

func TestAggregator_SnapshotIsCopy(t *testing.T) {
	a := NewAggregator()
	a.Record([]model.MatchingResult{result(1.0)})

	s := a.Snapshot()
	s.CountsByMatchKind[model.MatchExact] = 100

	assert.Equal(t, 1, a.Snapshot().CountsByMatchKind[model.MatchExact])
}

func TestAggregator_Reset(t *testing.T) {
	a := NewAggregator()
	a.Record([]model.MatchingResult{result(1.0)})
	a.Reset()

	s := a.Snapshot()
	assert.Equal(t, 0, s.TotalAttempts)
	assert.Equal(t, 0, s.TotalMatches)
	assert.Empty(t, s.CountsByMatchKind)
}

func TestAggregator_Concurrent(t *testing.T) {
	a := NewAggregator()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.Record([]model.MatchingResult{result(0.9), result(0.7)})
		}()
		go func() {
			defer wg.Done()
			s := a.Snapshot()
			// Passes are applied whole
			assert.Equal(t, 2*s.SuccessfulAttempts, s.TotalMatches)
		}()
	}
	wg.Wait()

	s := a.Snapshot()
	assert.Equal(t, 50, s.TotalAttempts)
	assert.Equal(t, 100, s.TotalMatches)
	assert.InDelta(t, 0.8, s.RunningAverageConfidence, 1e-9)
	assert.Equal(t, 50, s.CountsByMatchKind[model.MatchFuzzy])
	assert.Equal(t, 50, s.CountsByMatchKind[model.MatchProbabilistic])
}
