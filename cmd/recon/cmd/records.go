package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/agenthands/recon/internal/core/model"
)

// loadRecords reads a JSON or YAML list of records. Records without an id get a
// random one and records without a source_id get defaultSource.
func loadRecords(path, defaultSource string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file '%s': %w", path, err)
	}

	var records []model.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse YAML records in '%s': %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON records in '%s': %w", path, err)
		}
	}

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.New().String()
		}
		if records[i].SourceID == "" {
			records[i].SourceID = defaultSource
		}
	}
	return records, nil
}
