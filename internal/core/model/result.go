package model

// DifferenceKind classifies one compared field.
type DifferenceKind string

const (
	DifferenceExact     DifferenceKind = "Exact"
	DifferenceSimilar   DifferenceKind = "Similar"
	DifferenceDifferent DifferenceKind = "Different"
	DifferenceMissing   DifferenceKind = "Missing"
)

// MatchKind classifies a MatchingResult by confidence band.
type MatchKind string

const (
	MatchExact         MatchKind = "Exact"
	MatchFuzzy         MatchKind = "Fuzzy"
	MatchProbabilistic MatchKind = "Probabilistic"
	MatchModelScored   MatchKind = "ModelScored"
)

// Confidence bands
const (
	ExactConfidence         = 0.95
	FuzzyConfidence         = 0.80
	ProbabilisticConfidence = 0.60
)

// ClassifyMatch bands an aggregated confidence score.
func ClassifyMatch(confidence float64) MatchKind {
	switch {
	case confidence >= ExactConfidence:
		return MatchExact
	case confidence >= FuzzyConfidence:
		return MatchFuzzy
	case confidence >= ProbabilisticConfidence:
		return MatchProbabilistic
	default:
		return MatchModelScored
	}
}

// FieldDifference describes how one field compared for one candidate pair.
type FieldDifference struct {
	FieldName       string         `json:"field_name"`
	SourceValue     Value          `json:"source_value"`
	TargetValue     Value          `json:"target_value"`
	Kind            DifferenceKind `json:"difference_kind"`
	SimilarityScore float64        `json:"similarity_score"`
}

// Candidate is a runner-up target for a source record.
type Candidate struct {
	TargetID   string  `json:"target_id"`
	Confidence float64 `json:"confidence"`
}

// MatchingResult is the best match found for one source record.
type MatchingResult struct {
	SourceRecord    Record            `json:"source_record"`
	TargetRecord    Record            `json:"target_record"`
	ConfidenceScore float64           `json:"confidence_score"`
	MatchKind       MatchKind         `json:"match_kind"`
	MatchingFields  []string          `json:"matching_fields"`
	Differences     []FieldDifference `json:"differences"`
	Alternates      []Candidate       `json:"alternates,omitempty"`
}

// MatchEdge is a persisted match between two record keys.
type MatchEdge struct {
	RunID      string    `json:"run_id,omitempty"`
	SourceKey  string    `json:"source_key"`
	TargetKey  string    `json:"target_key"`
	Confidence float64   `json:"confidence"`
	MatchKind  MatchKind `json:"match_kind"`
}
