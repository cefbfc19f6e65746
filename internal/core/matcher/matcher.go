// Package matcher finds, for every source record, the best target record under a
// reconciliation config.
package matcher

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/recon/internal/core/compare"
	"github.com/agenthands/recon/internal/core/model"
	"github.com/agenthands/recon/internal/core/registry"
	"github.com/agenthands/recon/internal/core/scorer"
	"github.com/agenthands/recon/internal/core/similarity"
	"github.com/agenthands/recon/internal/logging"
)

// Matcher runs reconciliation passes. The zero value is ready to use.
type Matcher struct {
	// Workers bounds the goroutines scanning source records; 0 means GOMAXPROCS.
	Workers int
}

func New(workers int) *Matcher {
	return &Matcher{Workers: workers}
}

// plan is a config resolved against the registry.
type plan struct {
	fields        []string
	algorithms    []similarity.Algorithm
	thresholds    []float64
	model         scorer.Scorer
	minConfidence float64
	maxMatches    int
}

// Match scores every source record against every target record and returns one
// result per source record whose best target reaches cfg.MinConfidenceThreshold,
// in source order. Several source records may share a target.
//
// A config that names an unregistered algorithm or model fails with a
// validation error before any record is compared; nothing else in the config
// is an error. Thresholds are used as given, so a field threshold above 1
// never pools and a negative floor accepts every candidate. The registry read
// lock is held for the whole pass.
func (m *Matcher) Match(ctx context.Context, reg *registry.Registry, source, target []model.Record, cfg model.ReconciliationConfig) ([]model.MatchingResult, error) {
	var results []model.MatchingResult
	err := reg.Read(func(rd registry.Reader) error {
		p, err := resolve(rd, cfg)
		if err != nil {
			return err
		}
		results, err = m.run(ctx, p, source, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Int("source_records", len(source)).
		Int("target_records", len(target)).
		Int("matches", len(results)).
		Msg("Reconciliation pass complete")

	return results, nil
}

func resolve(rd registry.Reader, cfg model.ReconciliationConfig) (*plan, error) {
	// Every selection is checked, including ones for fields not being compared.
	for _, field := range cfg.SortedAlgorithmFields() {
		if _, err := rd.Algorithm(cfg.AlgorithmName(field)); err != nil {
			return nil, fmt.Errorf("invalid algorithm selection for field %s: %w", field, err)
		}
	}

	fields := uniqueFields(cfg.MatchingFields)
	p := &plan{
		fields:        fields,
		algorithms:    make([]similarity.Algorithm, len(fields)),
		thresholds:    make([]float64, len(fields)),
		minConfidence: cfg.MinConfidenceThreshold,
		maxMatches:    cfg.MaxMatchesPerRecord,
	}
	for i, field := range fields {
		alg, err := rd.Algorithm(cfg.AlgorithmName(field))
		if err != nil {
			return nil, fmt.Errorf("invalid algorithm selection for field %s: %w", field, err)
		}
		p.algorithms[i] = alg
		p.thresholds[i] = cfg.FieldThreshold(field)
	}

	if cfg.ModelName != "" {
		s, err := rd.Model(cfg.ModelName)
		if err != nil {
			return nil, fmt.Errorf("invalid model selection: %w", err)
		}
		p.model = s
	}

	return p, nil
}

// uniqueFields drops repeated field names, keeping first-seen order.
func uniqueFields(fields []string) []string {
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func (m *Matcher) run(ctx context.Context, p *plan, source, target []model.Record) ([]model.MatchingResult, error) {
	workers := m.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one slot, so results come back in source order.
	slots := make([]*model.MatchingResult, len(source))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range source {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = p.best(gctx, source[i], target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]model.MatchingResult, 0, len(source))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

type pair struct {
	confidence float64
	kind       model.MatchKind
	matching   []string
	diffs      []model.FieldDifference
}

// best scans the targets for src. Ties keep the first target seen.
func (p *plan) best(ctx context.Context, src model.Record, targets []model.Record) *model.MatchingResult {
	bestIdx := -1
	var bestPair pair
	var runnersUp []model.Candidate

	for j, tgt := range targets {
		c := p.score(ctx, src, tgt)
		if c.confidence < p.minConfidence {
			continue
		}
		if bestIdx < 0 || c.confidence > bestPair.confidence {
			if bestIdx >= 0 && p.maxMatches > 1 {
				runnersUp = append(runnersUp, model.Candidate{TargetID: targets[bestIdx].ID, Confidence: bestPair.confidence})
			}
			bestIdx, bestPair = j, c
			continue
		}
		if p.maxMatches > 1 {
			runnersUp = append(runnersUp, model.Candidate{TargetID: tgt.ID, Confidence: c.confidence})
		}
	}

	if bestIdx < 0 {
		return nil
	}

	return &model.MatchingResult{
		SourceRecord:    src.Clone(),
		TargetRecord:    targets[bestIdx].Clone(),
		ConfidenceScore: bestPair.confidence,
		MatchKind:       bestPair.kind,
		MatchingFields:  bestPair.matching,
		Differences:     bestPair.diffs,
		Alternates:      p.alternates(runnersUp),
	}
}

// alternates orders the runners-up by confidence and keeps maxMatches-1 of them.
func (p *plan) alternates(runnersUp []model.Candidate) []model.Candidate {
	if len(runnersUp) == 0 {
		return nil
	}
	sort.SliceStable(runnersUp, func(i, j int) bool {
		return runnersUp[i].Confidence > runnersUp[j].Confidence
	})
	if limit := p.maxMatches - 1; len(runnersUp) > limit {
		runnersUp = runnersUp[:limit]
	}
	return runnersUp
}

// score compares one candidate pair field by field. Only fields reaching their
// threshold count toward the confidence, which is their mean similarity.
func (p *plan) score(ctx context.Context, src, tgt model.Record) pair {
	c := pair{
		matching: make([]string, 0, len(p.fields)),
		diffs:    make([]model.FieldDifference, 0, len(p.fields)),
	}

	var features map[string]float64
	if p.model != nil {
		features = make(map[string]float64, len(p.fields))
	}

	var pooled float64
	for i, field := range p.fields {
		sv, _ := src.Field(field)
		tv, _ := tgt.Field(field)

		sim, kind := compare.Compare(sv, tv, p.algorithms[i])
		c.diffs = append(c.diffs, model.FieldDifference{
			FieldName:       field,
			SourceValue:     sv,
			TargetValue:     tv,
			Kind:            kind,
			SimilarityScore: sim,
		})
		if features != nil {
			features[field] = sim
		}
		if sim >= p.thresholds[i] {
			c.matching = append(c.matching, field)
			pooled += sim
		}
	}

	if len(c.matching) > 0 {
		c.confidence = pooled / float64(len(c.matching))
	}
	c.kind = model.ClassifyMatch(c.confidence)

	if p.model != nil {
		c.confidence = clamp(p.predict(ctx, features))
		c.kind = model.MatchModelScored
	}

	return c
}

// predict hands the pass context to scorers that can be cancelled.
func (p *plan) predict(ctx context.Context, features map[string]float64) float64 {
	if cs, ok := p.model.(scorer.ContextScorer); ok {
		return cs.PredictContext(ctx, features)
	}
	return p.model.Predict(features)
}

func clamp(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
