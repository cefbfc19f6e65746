package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samples = []string{
	"",
	"hello",
	"helo",
	"John Doe",
	"John D",
	"Jon Doe",
	"MARTHA",
	"MARHTA",
	"Robert",
	"Rupert",
	"Acme Corp Ltd",
	"ACME Corporation",
	"naïve café",
	"a",
	"  ",
}

func TestSimilarity_Levenshtein(t *testing.T) {
	assert.Equal(t, 1.0, Similarity(Levenshtein, "hello", "hello"))
	assert.InDelta(t, 0.8, Similarity(Levenshtein, "hello", "helo"), 1e-9)
	assert.InDelta(t, 0.75, Similarity(Levenshtein, "John Doe", "John D"), 1e-9)
	assert.InDelta(t, 0.875, Similarity(Levenshtein, "Jon Doe", "John Doe"), 1e-9)
	assert.Equal(t, 0.0, Similarity(Levenshtein, "abc", "xyz"))
}

func TestSimilarity_JaroWinkler(t *testing.T) {
	// Classic reference pair: jaro 0.944, three shared prefix runes
	assert.InDelta(t, 0.9611, Similarity(JaroWinkler, "MARTHA", "MARHTA"), 1e-4)
	assert.InDelta(t, 0.95, Similarity(JaroWinkler, "John Doe", "John D"), 1e-9)
	assert.Equal(t, 0.0, Similarity(JaroWinkler, "abc", "xyz"))
}

func TestSimilarity_Jaccard(t *testing.T) {
	// {a,b,c} vs {b,c,d}
	assert.InDelta(t, 0.5, Similarity(Jaccard, "abc", "bcd"), 1e-9)
	// Repeated characters collapse into the set
	assert.Equal(t, 1.0, Similarity(Jaccard, "aab", "abb"))
}

func TestSimilarity_Cosine(t *testing.T) {
	assert.InDelta(t, 0.5, Similarity(Cosine, "acme corp", "acme ltd"), 1e-9)
	assert.Equal(t, 1.0, Similarity(Cosine, "acme  corp", "corp acme"))
	// Same bag of words in any order is exactly 1, so a 1.0 threshold accepts it
	assert.Equal(t, 1.0, Similarity(Cosine, "a a b c", "c b a a"))
	assert.Equal(t, 1.0, Similarity(Cosine, "first national bank of springfield", "springfield  bank first national of"))
	assert.True(t, Algorithm{Kind: Cosine, Threshold: 1.0}.Matches("north east west", "west east north"))
	// A string with no words is an all-zero vector
	assert.Equal(t, 0.0, Similarity(Cosine, "  ", "acme"))
}

func TestSimilarity_Soundex(t *testing.T) {
	assert.Equal(t, "R163", soundexCode("Robert"))
	assert.Equal(t, "R163", soundexCode("Rupert"))
	assert.Equal(t, "A261", soundexCode("Ashcraft"))
	assert.Equal(t, "T522", soundexCode("Tymczak"))
	assert.Equal(t, "P236", soundexCode("Pfister"))
	assert.Equal(t, "L000", soundexCode("Lee"))

	assert.Equal(t, 1.0, Similarity(Soundex, "Robert", "Rupert"))
	assert.Equal(t, 0.0, Similarity(Soundex, "Robert", "Rubin"))
	// No letters means no code
	assert.Equal(t, 0.0, Similarity(Soundex, "123", "456"))
}

func TestSimilarity_Metaphone(t *testing.T) {
	assert.Equal(t, "SM0", metaphoneCode("Smith"))
	assert.Equal(t, "SM0", metaphoneCode("Smyth"))
	assert.Equal(t, "FLP", metaphoneCode("Philip"))
	assert.Equal(t, "FLP", metaphoneCode("Filip"))
	assert.Equal(t, "NT", metaphoneCode("Knight"))
	assert.Equal(t, "NT", metaphoneCode("Night"))
	assert.LessOrEqual(t, len(metaphoneCode("Christopherson")), 4)

	assert.Equal(t, 1.0, Similarity(Metaphone, "Smith", "Smyth"))
	assert.Equal(t, 0.0, Similarity(Metaphone, "Smith", "Jones"))
}

func TestSimilarity_EmptyStrings(t *testing.T) {
	for _, kind := range Kinds() {
		assert.Equal(t, 1.0, Similarity(kind, "", ""), kind.String())
		assert.Equal(t, 0.0, Similarity(kind, "", "x"), kind.String())
		assert.Equal(t, 0.0, Similarity(kind, "x", ""), kind.String())
	}
}

func TestSimilarity_RangeAndReflexivity(t *testing.T) {
	for _, kind := range Kinds() {
		for _, a := range samples {
			assert.Equal(t, 1.0, Similarity(kind, a, a), "%s(%q, %q)", kind, a, a)
			for _, b := range samples {
				s := Similarity(kind, a, b)
				assert.GreaterOrEqual(t, s, 0.0, "%s(%q, %q)", kind, a, b)
				assert.LessOrEqual(t, s, 1.0, "%s(%q, %q)", kind, a, b)
			}
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	symmetric := []Kind{Levenshtein, JaroWinkler, Jaccard, Cosine}
	for _, kind := range symmetric {
		for _, a := range samples {
			for _, b := range samples {
				assert.InDelta(t, Similarity(kind, a, b), Similarity(kind, b, a), 1e-9, "%s(%q, %q)", kind, a, b)
			}
		}
	}
}

func TestSimilarity_PhoneticIsBinary(t *testing.T) {
	for _, kind := range []Kind{Soundex, Metaphone} {
		for _, a := range samples {
			for _, b := range samples {
				s := Similarity(kind, a, b)
				assert.True(t, s == 0.0 || s == 1.0, "%s(%q, %q) = %v", kind, a, b, s)
			}
		}
	}
}

func TestSimilarity_StrutilKinds(t *testing.T) {
	assert.Equal(t, 1.0, Similarity(SorensenDice, "night", "night"))
	dice := Similarity(SorensenDice, "night", "nacht")
	assert.Greater(t, dice, 0.0)
	assert.Less(t, dice, 1.0)

	assert.InDelta(t, 0.8, Similarity(Hamming, "karol", "karal"), 1e-9)
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	k, err := ParseKind("Jaro-Winkler")
	require.NoError(t, err)
	assert.Equal(t, JaroWinkler, k)

	_, err = ParseKind("bogus")
	assert.Error(t, err)
}

func TestAlgorithm_Matches(t *testing.T) {
	alg := New(Levenshtein)
	assert.Equal(t, 0.8, alg.Threshold)
	assert.True(t, alg.Matches("hello", "helo"))
	assert.False(t, alg.Matches("John Doe", "John D"))

	strict := Algorithm{Kind: Levenshtein, Threshold: 0.9}
	assert.False(t, strict.Matches("hello", "helo"))
}
