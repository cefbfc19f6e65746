package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/recon/internal/core/model"
)

const testConfig = `
[logging]
level = "error"
output = "discard"

[matching]
matching_fields = ["name", "amount"]
min_confidence_threshold = 0.7
max_matches_per_record = 1

[matching.field_thresholds]
name = 0.8
amount = 0.9

[[algorithms]]
name = "sounds_like"
kind = "soundex"
`

const sourceJSON = `[
	{"id": "1", "fields": {"name": "Jon Doe", "amount": 100}},
	{"fields": {"name": "Nobody", "amount": 3}}
]`

const targetYAML = `
- id: a
  source_id: bank
  fields:
    name: John Doe
    amount: 100
- id: b
  source_id: bank
  fields:
    name: Mary Major
    amount: 42.5
`

func writeFixtures(t *testing.T) (cfgPath, sourcePath, targetPath string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "recon.toml")
	sourcePath = filepath.Join(dir, "source.json")
	targetPath = filepath.Join(dir, "target.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o644))
	require.NoError(t, os.WriteFile(sourcePath, []byte(sourceJSON), 0o644))
	require.NoError(t, os.WriteFile(targetPath, []byte(targetYAML), 0o644))
	return cfgPath, sourcePath, targetPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_JSON(t *testing.T) {
	cfgPath, sourcePath, targetPath := writeFixtures(t)

	out, err := execute(t, "run", "--config", cfgPath, "--source", sourcePath, "--target", targetPath, "--output", "json")
	require.NoError(t, err, out)

	var report runReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)

	r := report.Results[0]
	assert.Equal(t, "source:1", r.SourceRecord.Key())
	assert.Equal(t, "bank:a", r.TargetRecord.Key())
	assert.InDelta(t, 0.9375, r.ConfidenceScore, 1e-9)
	assert.Equal(t, model.MatchFuzzy, r.MatchKind)
	assert.Equal(t, [][]string{{"bank:a", "source:1"}}, report.Clusters)
	assert.Equal(t, 1, report.Statistics.TotalAttempts)
}

func TestRun_Overrides(t *testing.T) {
	cfgPath, sourcePath, targetPath := writeFixtures(t)

	out, err := execute(t, "run", "--config", cfgPath, "--source", sourcePath, "--target", targetPath,
		"--fields", "name", "--min-confidence", "0.9", "--workers", "1", "--output", "yaml")
	require.NoError(t, err, out)
	// Only name is compared now, and 0.875 is under the floor
	assert.Contains(t, out, "results: []")
}

func TestRun_Table(t *testing.T) {
	cfgPath, sourcePath, targetPath := writeFixtures(t)

	out, err := execute(t, "run", "--config", cfgPath, "--source", sourcePath, "--target", targetPath, "--output", "table")
	require.NoError(t, err, out)
	assert.Contains(t, out, "source:1")
	assert.Contains(t, out, "bank:a")
	assert.Contains(t, out, "0.938")
	assert.Contains(t, out, "1 of 2 source records matched")
}

func TestRun_Errors(t *testing.T) {
	cfgPath, sourcePath, targetPath := writeFixtures(t)

	_, err := execute(t, "run", "--config", cfgPath, "--source", sourcePath)
	assert.Error(t, err)

	_, err = execute(t, "run", "--config", cfgPath, "--source", "missing.json", "--target", targetPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read records file")

	_, err = execute(t, "run", "--config", cfgPath, "--source", sourcePath, "--target", targetPath, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = execute(t, "run", "--config", cfgPath, "--source", sourcePath, "--target", targetPath, "--model", "missing", "--output", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `model "missing" is not registered`)
}

func TestSimilarity(t *testing.T) {
	cfgPath, _, _ := writeFixtures(t)

	out, err := execute(t, "similarity", "--config", cfgPath, "hello", "helo")
	require.NoError(t, err)
	assert.Equal(t, "levenshtein: 0.8000 (meets threshold 0.80)\n", out)

	out, err = execute(t, "similarity", "--config", cfgPath, "--algorithm", "sounds_like", "Robert", "Rupert")
	require.NoError(t, err)
	assert.Equal(t, "sounds_like: 1.0000 (meets threshold 1.00)\n", out)

	out, err = execute(t, "similarity", "--config", cfgPath, "-a", "jaro_winkler", "abc", "xyz")
	require.NoError(t, err)
	assert.Equal(t, "jaro_winkler: 0.0000 (below threshold 0.85)\n", out)

	_, err = execute(t, "similarity", "--config", cfgPath, "--algorithm", "nope", "a", "b")
	assert.Error(t, err)
}

func TestAlgorithms(t *testing.T) {
	cfgPath, _, _ := writeFixtures(t)

	out, err := execute(t, "algorithms", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "sounds_like")
	assert.Contains(t, out, "jaro_winkler")
	assert.Contains(t, out, "0.85")
}
