package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func triangles(bridge bool) ([]string, []Edge) {
	nodes := []string{"1", "2", "3", "4", "5", "6"}
	edges := []Edge{
		{Source: "1", Target: "2", Weight: 1}, {Source: "2", Target: "3", Weight: 1}, {Source: "3", Target: "1", Weight: 1},
		{Source: "4", Target: "5", Weight: 1}, {Source: "5", Target: "6", Weight: 1}, {Source: "6", Target: "4", Weight: 1},
	}
	if bridge {
		edges = append(edges, Edge{Source: "3", Target: "4", Weight: 0.5})
	}
	return nodes, edges
}

func TestLPA_DisconnectedComponents(t *testing.T) {
	nodes, edges := triangles(false)

	clusters, err := NewLabelPropagationDetector().Detect(nodes, edges)
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, clusters)
}

func TestLPA_WeakBridgeKeepsClustersApart(t *testing.T) {
	nodes, edges := triangles(true)

	clusters, err := NewLabelPropagationDetector().Detect(nodes, edges)
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, clusters)

	// Connectivity alone merges them
	merged, err := NewComponentDetector().Detect(nodes, edges)
	assert.NoError(t, err)
	assert.Len(t, merged, 1)
}

func TestLPA_Deterministic(t *testing.T) {
	nodes, edges := triangles(true)
	first, _ := NewLabelPropagationDetector().Detect(nodes, edges)
	for i := 0; i < 10; i++ {
		again, _ := NewLabelPropagationDetector().Detect(nodes, edges)
		assert.Equal(t, first, again)
	}
}

func TestLPA_Singletons(t *testing.T) {
	clusters, err := NewLabelPropagationDetector().Detect([]string{"a", "b"}, nil)
	assert.NoError(t, err)
	assert.Empty(t, clusters)

	clusters, err = NewLabelPropagationDetector().Detect(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, clusters)
}

func TestLPA_Pair(t *testing.T) {
	clusters, err := NewLabelPropagationDetector().Detect([]string{"a", "b", "b"}, []Edge{{Source: "a", Target: "b", Weight: 0.9}})
	assert.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, clusters)
}
