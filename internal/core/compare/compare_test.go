package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/recon/internal/core/model"
	"github.com/agenthands/recon/internal/core/similarity"
)

var lev = similarity.New(similarity.Levenshtein)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		a, b      model.Value
		alg       similarity.Algorithm
		wantScore float64
		wantKind  model.DifferenceKind
	}{
		{"identical strings", model.String("John"), model.String("John"), lev, 1.0, model.DifferenceExact},
		{"similar strings", model.String("hello"), model.String("helo"), lev, 0.8, model.DifferenceSimilar},
		{"close strings band exact", model.String("abcdefghij"), model.String("abcdefghik"), lev, 0.9, model.DifferenceExact},
		{"different strings", model.String("abc"), model.String("xyz"), lev, 0.0, model.DifferenceDifferent},
		{"phonetic algorithm", model.String("Robert"), model.String("Rupert"), similarity.New(similarity.Soundex), 1.0, model.DifferenceExact},
		{"equal numbers", model.Number(100), model.Number(100), lev, 1.0, model.DifferenceExact},
		{"both zero", model.Number(0), model.Number(0), lev, 1.0, model.DifferenceExact},
		{"near numbers", model.Number(100), model.Number(95), lev, 0.95, model.DifferenceExact},
		{"far numbers", model.Number(100), model.Number(75), lev, 0.75, model.DifferenceSimilar},
		{"zero against number", model.Number(0), model.Number(10), lev, 0.0, model.DifferenceDifferent},
		{"opposite signs", model.Number(5), model.Number(-5), lev, 0.0, model.DifferenceDifferent},
		{"equal booleans", model.Bool(true), model.Bool(true), lev, 1.0, model.DifferenceExact},
		{"different booleans", model.Bool(true), model.Bool(false), lev, 0.0, model.DifferenceDifferent},
		{"missing target", model.String("x"), model.Null(), lev, 0.0, model.DifferenceMissing},
		{"missing source", model.Null(), model.Number(1), lev, 0.0, model.DifferenceMissing},
		{"both missing", model.Null(), model.Null(), lev, 1.0, model.DifferenceExact},
		{"type mismatch", model.String("100"), model.Number(100), lev, 0.0, model.DifferenceDifferent},
		{"bool against string", model.Bool(true), model.String("true"), lev, 0.0, model.DifferenceDifferent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, kind := Compare(tt.a, tt.b, tt.alg)
			assert.InDelta(t, tt.wantScore, score, 1e-9)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestBand(t *testing.T) {
	assert.Equal(t, model.DifferenceExact, Band(0.9))
	assert.Equal(t, model.DifferenceSimilar, Band(0.89))
	assert.Equal(t, model.DifferenceSimilar, Band(0.7))
	assert.Equal(t, model.DifferenceDifferent, Band(0.69))
}
