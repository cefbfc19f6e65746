package community

import (
	"sort"
)

// LabelPropagationDetector splits weakly bridged groups that ComponentDetector
// would merge. Nodes are visited in sorted order and ties go to the largest
// label, so the result is deterministic.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(nodes []string, edges []Edge) ([][]string, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	order := dedupe(nodes)
	sort.Strings(order)

	// node -> neighbor -> summed weight
	adj := make(map[string]map[string]float64, len(order))
	for _, n := range order {
		adj[n] = make(map[string]float64)
	}
	for _, e := range edges {
		if _, ok := adj[e.Source]; !ok {
			continue
		}
		if _, ok := adj[e.Target]; !ok {
			continue
		}
		if e.Source == e.Target {
			continue
		}
		w := e.Weight
		if w <= 0 {
			w = 1
		}
		adj[e.Source][e.Target] += w
		adj[e.Target][e.Source] += w
	}

	neighbors := make(map[string][]string, len(order))
	for _, n := range order {
		ns := make([]string, 0, len(adj[n]))
		for v := range adj[n] {
			ns = append(ns, v)
		}
		sort.Strings(ns)
		neighbors[n] = ns
	}

	labels := make(map[string]string, len(order))
	for _, n := range order {
		labels[n] = n
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0

		for _, u := range order {
			if len(neighbors[u]) == 0 {
				continue
			}

			scores := make(map[string]float64)
			best := 0.0
			for _, v := range neighbors[u] {
				label := labels[v]
				scores[label] += adj[u][v]
				if scores[label] > best {
					best = scores[label]
				}
			}

			var candidates []string
			for label, score := range scores {
				if score == best {
					candidates = append(candidates, label)
				}
			}
			sort.Strings(candidates)
			next := candidates[len(candidates)-1]

			if labels[u] != next {
				labels[u] = next
				changed++
			}
		}

		if changed == 0 {
			break
		}
	}

	groups := make(map[string][]string)
	for _, n := range order {
		groups[labels[n]] = append(groups[labels[n]], n)
	}

	var clusters [][]string
	for _, g := range groups {
		if len(g) >= 2 {
			clusters = append(clusters, g)
		}
	}

	return normalize(clusters), nil
}
