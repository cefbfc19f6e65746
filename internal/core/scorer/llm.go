package scorer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agenthands/recon/internal/core/common"
	"github.com/agenthands/recon/internal/llm"
	"github.com/agenthands/recon/internal/logging"
)

// DefaultScoringPrompt takes the candidate's feature list as its only argument.
const DefaultScoringPrompt = `
You are reconciling two datasets. A source record and a target record were
compared field by field; each line below is a field name and its similarity in [0, 1].

<FIELD SIMILARITIES>
%s
</FIELD SIMILARITIES>

Instructions:
Decide how likely it is that both records describe the same real-world entity.
Return a JSON object with key "confidence" (float between 0 and 1).

Example JSON:
{"confidence": 0.9}
`

const defaultLLMTimeout = 30 * time.Second

type llmVerdict struct {
	Confidence float64 `json:"confidence"`
}

// LLMScorer asks a language model to judge a candidate pair from its features.
// Any failure scores the pair 0, so an unavailable model never produces matches.
type LLMScorer struct {
	LLM     llm.LLMClient
	Prompt  string
	Timeout time.Duration
}

func NewLLMScorer(client llm.LLMClient, prompt string) *LLMScorer {
	if prompt == "" {
		prompt = DefaultScoringPrompt
	}
	return &LLMScorer{
		LLM:     client,
		Prompt:  prompt,
		Timeout: defaultLLMTimeout,
	}
}

// Predict scores without a caller context; each call still gives up after
// Timeout.
func (s *LLMScorer) Predict(features map[string]float64) float64 {
	return s.PredictContext(context.Background(), features)
}

// PredictContext scores under ctx, bounded by Timeout when it is set. A
// cancelled ctx scores 0 without calling the model.
func (s *LLMScorer) PredictContext(ctx context.Context, features map[string]float64) float64 {
	var (
		callCtx context.Context
		cancel  context.CancelFunc
	)
	if s.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	score, err := s.Score(callCtx, features)
	if err != nil {
		// a cancelled pass is not a scoring failure
		if ctx.Err() == nil {
			logging.Default().Warn().Err(err).Msg("LLM scoring failed, scoring candidate 0")
		}
		return 0
	}
	return score
}

// Score is Predict with the caller's context and the error surfaced.
func (s *LLMScorer) Score(ctx context.Context, features map[string]float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prompt := fmt.Sprintf(s.Prompt, serializeFeatures(features))

	response, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to generate match verdict: %w", err)
	}

	verdict, err := common.ParseJSON[llmVerdict](response)
	if err != nil {
		return 0, fmt.Errorf("failed to parse match verdict: %w", err)
	}
	return clamp(verdict.Confidence), nil
}

func serializeFeatures(features map[string]float64) string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "- %s: %.3f\n", name, features[name])
	}
	return sb.String()
}
