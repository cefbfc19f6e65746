//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/recon/internal/config"
	"github.com/agenthands/recon/internal/core"
	"github.com/agenthands/recon/internal/core/model"
	"github.com/agenthands/recon/internal/driver"
	"github.com/agenthands/recon/internal/llm"
)

func connect(t *testing.T) *driver.MemgraphDriver {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	d, err := driver.NewMemgraphDriver(context.Background(), uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close(context.Background()) })
	return d
}

func records(sourceID string, rows ...[2]any) []model.Record {
	out := make([]model.Record, len(rows))
	for i, row := range rows {
		out[i] = model.Record{
			ID:       fmt.Sprintf("%s-%d-%s", sourceID, i, uuid.New().String()[:8]),
			SourceID: sourceID,
			Fields: map[string]model.Value{
				"name":   model.FromAny(row[0]),
				"amount": model.FromAny(row[1]),
			},
		}
	}
	return out
}

func TestSaveAndLoadRun(t *testing.T) {
	d := connect(t)
	ctx := context.Background()

	e := core.NewEngine(d, 0)
	require.NoError(t, e.BuildIndices(ctx))

	source := records("ledger", [2]any{"Jon Doe", 100}, [2]any{"Mary Major", 42.5}, [2]any{"Nobody", 1})
	target := records("bank", [2]any{"John Doe", 100}, [2]any{"Mary Majors", 42.5})

	cfg := model.ReconciliationConfig{
		MatchingFields:         []string{"name", "amount"},
		FieldThresholds:        map[string]float64{"name": 0.8, "amount": 0.9},
		MinConfidenceThreshold: 0.7,
		MaxMatchesPerRecord:    1,
	}

	results, err := e.Reconcile(ctx, source, target, cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)

	runID, err := e.SaveRun(ctx, results)
	require.NoError(t, err)

	edges, err := e.RunMatches(ctx, runID)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	for _, edge := range edges {
		assert.GreaterOrEqual(t, edge.Confidence, 0.7)
	}

	clusters, err := e.ClusterEdges(edges)
	require.NoError(t, err)
	assert.Len(t, clusters, 2)

	require.NoError(t, e.DeleteRun(ctx, runID))
	edges, err = e.RunMatches(ctx, runID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestLLMScoredRun(t *testing.T) {
	_ = godotenv.Load("../../.env")

	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		t.Skip("Skipping integration test: LLM_PROVIDER not set")
	}

	cfg := config.Default()
	cfg.ApplyEnv()
	cfg.Models = []config.ModelConfig{{Name: "judge", Kind: "llm"}}

	client, err := llm.NewClient(context.Background(), cfg.LLM)
	require.NoError(t, err)

	e := core.NewEngine(nil, 1)
	require.NoError(t, core.Configure(e, cfg, client))

	match := model.ReconciliationConfig{
		MatchingFields:         []string{"name", "amount"},
		MinConfidenceThreshold: 0,
		ModelName:              "judge",
	}
	results, err := e.Reconcile(context.Background(),
		records("ledger", [2]any{"John Doe", 100}),
		records("bank", [2]any{"John Doe", 100}),
		match)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, model.MatchModelScored, results[0].MatchKind)
}
