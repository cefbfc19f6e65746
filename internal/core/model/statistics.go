package model

// Statistics accumulates over every completed reconciliation pass of an engine.
type Statistics struct {
	TotalAttempts            int               `json:"total_attempts"`
	SuccessfulAttempts       int               `json:"successful_attempts"`
	FailedAttempts           int               `json:"failed_attempts"`
	RunningAverageConfidence float64           `json:"running_average_confidence"`
	CountsByMatchKind        map[MatchKind]int `json:"counts_by_match_kind"`
	TotalMatches             int               `json:"total_matches"`
}

// Clone returns a copy that does not share its map with s.
func (s Statistics) Clone() Statistics {
	out := s
	out.CountsByMatchKind = make(map[MatchKind]int, len(s.CountsByMatchKind))
	for k, v := range s.CountsByMatchKind {
		out.CountsByMatchKind[k] = v
	}
	return out
}
