package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/recon/internal/logging"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create memgraph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to memgraph at %s: %w", uri, err)
	}

	logging.FromContext(ctx).Info().Str("uri", uri).Msg("Connected to Memgraph")
	return &MemgraphDriver{Driver: driver}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// IndexQueries are run by BuildIndices.
var IndexQueries = []string{
	"CREATE INDEX ON :Record(key);",
	"CREATE INDEX ON :Record(source_id);",
	"CREATE INDEX ON :ReconciliationRun(uuid);",
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	for _, q := range IndexQueries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			// Memgraph rejects an index that already exists
			logging.FromContext(ctx).Warn().Err(err).Str("query", q).Msg("Failed to create index")
		}
	}
	return nil
}
