// Package core wires the matcher, registry and statistics into the engine that
// callers use, and optionally persists runs to a graph database.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/recon/internal/core/community"
	"github.com/agenthands/recon/internal/core/matcher"
	"github.com/agenthands/recon/internal/core/model"
	"github.com/agenthands/recon/internal/core/registry"
	"github.com/agenthands/recon/internal/core/scorer"
	"github.com/agenthands/recon/internal/core/similarity"
	"github.com/agenthands/recon/internal/core/stats"
	"github.com/agenthands/recon/internal/driver"
	"github.com/agenthands/recon/internal/errors"
	"github.com/agenthands/recon/internal/logging"
)

// ErrNoDriver is returned by the persistence methods of an engine without a driver.
var ErrNoDriver = errors.New("no graph driver configured")

// Source ids given to records that have none when they are keyed, so a source
// and a target record sharing an id stay distinct.
const (
	SourceTag = "source"
	TargetTag = "target"
)

// TagRecord returns rec with sourceID filled in when it has none.
func TagRecord(rec model.Record, sourceID string) model.Record {
	if rec.SourceID == "" {
		rec.SourceID = sourceID
	}
	return rec
}

type Engine struct {
	Registry *registry.Registry
	Stats    *stats.Aggregator
	Matcher  *matcher.Matcher
	Detector community.Detector

	// Driver is optional; without it runs are not persisted.
	Driver driver.GraphDriver

	UUIDGenerator func() string
	Now           func() time.Time
}

func NewEngine(graphDriver driver.GraphDriver, workers int) *Engine {
	return &Engine{
		Registry:      registry.New(),
		Stats:         stats.NewAggregator(),
		Matcher:       matcher.New(workers),
		Detector:      community.NewLabelPropagationDetector(),
		Driver:        graphDriver,
		UUIDGenerator: func() string { return uuid.New().String() },
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) BuildIndices(ctx context.Context) error {
	if e.Driver == nil {
		return ErrNoDriver
	}
	return e.Driver.BuildIndices(ctx)
}

// Reconcile runs one pass and folds it into the statistics. A pass that fails
// validation or is cancelled leaves the statistics untouched.
func (e *Engine) Reconcile(ctx context.Context, source, target []model.Record, cfg model.ReconciliationConfig) ([]model.MatchingResult, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	results, err := e.Matcher.Match(ctx, e.Registry, source, target, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Reconciliation aborted")
		return nil, err
	}

	e.Stats.Record(results)

	logger.Info().
		Int("source_records", len(source)).
		Int("target_records", len(target)).
		Int("matches", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("Reconciliation finished")

	return results, nil
}

func (e *Engine) RegisterAlgorithm(name string, alg similarity.Algorithm) error {
	if err := e.Registry.RegisterAlgorithm(name, alg); err != nil {
		return err
	}
	logging.Default().Debug().Str("name", name).Stringer("kind", alg.Kind).Float64("threshold", alg.Threshold).Msg("Registered algorithm")
	return nil
}

func (e *Engine) RegisterModel(name string, s scorer.Scorer) error {
	if err := e.Registry.RegisterModel(name, s); err != nil {
		return err
	}
	logging.Default().Debug().Str("name", name).Msg("Registered model")
	return nil
}

// Statistics returns a point-in-time copy.
func (e *Engine) Statistics() model.Statistics {
	return e.Stats.Snapshot()
}

// SaveRun persists results as one run and returns its id. Both records of every
// result are upserted by key and linked by a MATCHES edge tagged with the run.
// Records without a source id are keyed under SourceTag or TargetTag. If a
// write fails the partly saved run is deleted again.
func (e *Engine) SaveRun(ctx context.Context, results []model.MatchingResult) (string, error) {
	if e.Driver == nil {
		return "", ErrNoDriver
	}

	runID := e.UUIDGenerator()
	if err := e.saveRun(ctx, runID, results); err != nil {
		return "", err
	}

	logging.FromContext(ctx).Info().Str("run_id", runID).Int("matches", len(results)).Msg("Saved reconciliation run")
	return runID, nil
}

func (e *Engine) saveRun(ctx context.Context, runID string, results []model.MatchingResult) (err error) {
	now := e.Now()

	var sum float64
	for _, r := range results {
		sum += r.ConfidenceScore
	}
	avg := 0.0
	if len(results) > 0 {
		avg = sum / float64(len(results))
	}

	runParams := map[string]interface{}{
		"uuid":               runID,
		"created_at":         now.Format(time.RFC3339),
		"result_count":       len(results),
		"average_confidence": avg,
	}
	if _, err := e.Driver.ExecuteQuery(ctx, driver.SaveRunQuery, runParams); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		if derr := e.DeleteRun(ctx, runID); derr != nil {
			logging.FromContext(ctx).Error().Err(derr).Str("run_id", runID).Msg("Failed to remove partially saved run")
		}
	}()

	saved := make(map[string]bool)
	for _, r := range results {
		src := TagRecord(r.SourceRecord, SourceTag)
		tgt := TagRecord(r.TargetRecord, TargetTag)
		for _, rec := range []model.Record{src, tgt} {
			if saved[rec.Key()] {
				continue
			}
			if err := e.saveRecord(ctx, rec); err != nil {
				return err
			}
			saved[rec.Key()] = true
		}

		matchParams := map[string]interface{}{
			"run_uuid":        runID,
			"source_key":      src.Key(),
			"target_key":      tgt.Key(),
			"confidence":      r.ConfidenceScore,
			"match_kind":      string(r.MatchKind),
			"matching_fields": r.MatchingFields,
			"created_at":      now.Format(time.RFC3339),
		}
		if _, err := e.Driver.ExecuteQuery(ctx, driver.SaveMatchQuery, matchParams); err != nil {
			return fmt.Errorf("failed to save match for %s: %w", src.Key(), err)
		}
	}
	return nil
}

func (e *Engine) saveRecord(ctx context.Context, rec model.Record) error {
	fields := make(map[string]interface{}, len(rec.Fields))
	for name, v := range rec.Fields {
		fields[name] = v.Any()
	}

	params := map[string]interface{}{
		"key":       rec.Key(),
		"id":        rec.ID,
		"source_id": rec.SourceID,
		"fields":    fields,
	}
	if _, err := e.Driver.ExecuteQuery(ctx, driver.SaveRecordQuery, params); err != nil {
		return fmt.Errorf("failed to save record %s: %w", rec.Key(), err)
	}
	return nil
}

// RunMatches loads the match edges of a saved run.
func (e *Engine) RunMatches(ctx context.Context, runID string) ([]model.MatchEdge, error) {
	if e.Driver == nil {
		return nil, ErrNoDriver
	}

	res, err := e.Driver.ExecuteQuery(ctx, driver.GetRunMatchesQuery, map[string]interface{}{"run_uuid": runID})
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	edges := make([]model.MatchEdge, 0, len(res.Records))
	for _, rec := range res.Records {
		edge, err := readEdge(rec)
		if err != nil {
			return nil, err
		}
		edge.RunID = runID
		edges = append(edges, edge)
	}
	return edges, nil
}

// RecordMatches loads every saved match whose source is the record with key,
// newest first.
func (e *Engine) RecordMatches(ctx context.Context, key string) ([]model.MatchEdge, error) {
	if e.Driver == nil {
		return nil, ErrNoDriver
	}

	res, err := e.Driver.ExecuteQuery(ctx, driver.GetRecordMatchesQuery, map[string]interface{}{"key": key})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for %s: %w", key, err)
	}

	edges := make([]model.MatchEdge, 0, len(res.Records))
	for _, rec := range res.Records {
		edge, err := readEdge(rec)
		if err != nil {
			return nil, err
		}
		runID, _, err := neo4j.GetRecordValue[string](rec, "run_uuid")
		if err != nil {
			return nil, fmt.Errorf("failed to read run_uuid: %w", err)
		}
		edge.RunID = runID
		edges = append(edges, edge)
	}
	return edges, nil
}

func readEdge(rec *neo4j.Record) (model.MatchEdge, error) {
	sourceKey, _, err := neo4j.GetRecordValue[string](rec, "source_key")
	if err != nil {
		return model.MatchEdge{}, fmt.Errorf("failed to read source_key: %w", err)
	}
	targetKey, _, err := neo4j.GetRecordValue[string](rec, "target_key")
	if err != nil {
		return model.MatchEdge{}, fmt.Errorf("failed to read target_key: %w", err)
	}
	confidence, _, err := neo4j.GetRecordValue[float64](rec, "confidence")
	if err != nil {
		return model.MatchEdge{}, fmt.Errorf("failed to read confidence: %w", err)
	}
	kind, _, err := neo4j.GetRecordValue[string](rec, "match_kind")
	if err != nil {
		return model.MatchEdge{}, fmt.Errorf("failed to read match_kind: %w", err)
	}

	return model.MatchEdge{
		SourceKey:  sourceKey,
		TargetKey:  targetKey,
		Confidence: confidence,
		MatchKind:  model.MatchKind(kind),
	}, nil
}

// DeleteRun removes a saved run and its match edges. Records are kept since
// other runs may refer to them.
func (e *Engine) DeleteRun(ctx context.Context, runID string) error {
	if e.Driver == nil {
		return ErrNoDriver
	}
	if _, err := e.Driver.ExecuteQuery(ctx, driver.DeleteRunQuery, map[string]interface{}{"run_uuid": runID}); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	return nil
}

// Clusters groups the records of results that are linked by matches.
func (e *Engine) Clusters(results []model.MatchingResult) ([][]string, error) {
	edges := make([]model.MatchEdge, 0, len(results))
	for _, r := range results {
		edges = append(edges, model.MatchEdge{
			SourceKey:  TagRecord(r.SourceRecord, SourceTag).Key(),
			TargetKey:  TagRecord(r.TargetRecord, TargetTag).Key(),
			Confidence: r.ConfidenceScore,
			MatchKind:  r.MatchKind,
		})
	}
	return e.ClusterEdges(edges)
}

// ClusterEdges groups record keys linked by edges.
func (e *Engine) ClusterEdges(edges []model.MatchEdge) ([][]string, error) {
	var nodes []string
	seen := make(map[string]bool)
	links := make([]community.Edge, 0, len(edges))
	for _, m := range edges {
		for _, key := range []string{m.SourceKey, m.TargetKey} {
			if !seen[key] {
				seen[key] = true
				nodes = append(nodes, key)
			}
		}
		links = append(links, community.Edge{Source: m.SourceKey, Target: m.TargetKey, Weight: m.Confidence})
	}

	clusters, err := e.Detector.Detect(nodes, links)
	if err != nil {
		return nil, fmt.Errorf("failed to detect clusters: %w", err)
	}
	return clusters, nil
}
