package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	Queries       []string
	Params        []map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
	FailOn        string // when set, only this query fails with Err
	IndicesBuilt  bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil && (m.FailOn == "" || m.FailOn == query) {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.IndicesBuilt = true
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

type MockLLM struct {
	Response      string
	ResponseQueue []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}
