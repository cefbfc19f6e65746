// Package community groups records that are linked by match edges.
package community

import (
	"sort"
)

// Edge links two record keys. Weight is the match confidence.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// Detector partitions nodes into clusters. Clusters hold at least two nodes,
// each cluster is sorted and clusters are ordered by their first node.
type Detector interface {
	Detect(nodes []string, edges []Edge) ([][]string, error)
}

// ComponentDetector clusters by connectivity alone: every connected component
// of two or more nodes is a cluster.
type ComponentDetector struct{}

func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{}
}

func (d *ComponentDetector) Detect(nodes []string, edges []Edge) ([][]string, error) {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n] = true
	}

	adj := make(map[string][]string)
	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	visited := make(map[string]bool)
	var clusters [][]string
	for _, n := range nodes {
		if visited[n] {
			continue
		}
		var component []string
		d.dfs(n, adj, visited, &component)
		if len(component) >= 2 {
			clusters = append(clusters, component)
		}
	}

	return normalize(clusters), nil
}

func (d *ComponentDetector) dfs(u string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

func dedupe(nodes []string) []string {
	seen := make(map[string]bool, len(nodes))
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func normalize(clusters [][]string) [][]string {
	for _, c := range clusters {
		sort.Strings(c)
	}
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i][0] < clusters[j][0]
	})
	return clusters
}
