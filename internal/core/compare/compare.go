// Package compare scores a single pair of field values.
package compare

import (
	"math"

	"github.com/agenthands/recon/internal/core/model"
	"github.com/agenthands/recon/internal/core/similarity"
)

// Difference bands
const (
	ExactBand   = 0.9
	SimilarBand = 0.7
)

// Compare scores a against b. Strings are scored with alg, numbers by relative
// difference and booleans by equality. A value missing on one side scores 0
// (Missing); a value missing on both sides scores 1. A type mismatch scores 0
// (Different).
func Compare(a, b model.Value, alg similarity.Algorithm) (float64, model.DifferenceKind) {
	switch {
	case a.IsNull() && b.IsNull():
		return 1.0, model.DifferenceExact
	case a.IsNull() || b.IsNull():
		return 0.0, model.DifferenceMissing
	case a.Kind() != b.Kind():
		return 0.0, model.DifferenceDifferent
	}

	switch a.Kind() {
	case model.StringKind:
		sa, _ := a.Str()
		sb, _ := b.Str()
		if sa == sb {
			return 1.0, model.DifferenceExact
		}
		score := alg.Similarity(sa, sb)
		return score, Band(score)

	case model.NumberKind:
		na, _ := a.Num()
		nb, _ := b.Num()
		score := numericSimilarity(na, nb)
		return score, Band(score)

	case model.BoolKind:
		ba, _ := a.Bool()
		bb, _ := b.Bool()
		if ba == bb {
			return 1.0, model.DifferenceExact
		}
		return 0.0, model.DifferenceDifferent
	}

	return 0.0, model.DifferenceDifferent
}

// Band classifies a similarity score into a difference kind.
func Band(score float64) model.DifferenceKind {
	switch {
	case score >= ExactBand:
		return model.DifferenceExact
	case score >= SimilarBand:
		return model.DifferenceSimilar
	default:
		return model.DifferenceDifferent
	}
}

func numericSimilarity(a, b float64) float64 {
	if a == b {
		return 1.0
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0.0
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 || math.IsInf(denom, 0) {
		return 0.0
	}
	score := 1.0 - math.Abs(a-b)/denom
	// opposite signs can go below zero
	if score < 0 {
		return 0.0
	}
	return score
}
