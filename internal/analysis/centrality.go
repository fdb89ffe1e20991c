package analysis

import "github.com/nexarch/core/internal/graph"

// bottleneckThreshold mirrors the reference implementation's fixed cut:
// nodes above this normalized betweenness score are flagged as
// bottlenecks.
const bottleneckThreshold = 0.3

// Centrality computes betweenness centrality for every node via
// Brandes' algorithm, treating the graph as directed and unweighted.
// For graphs with more than two nodes the result is normalized by
// (n-1)(n-2), the number of ordered pairs of other nodes, so scores fall
// in [0, 1]; graphs with two or fewer nodes are left unscaled.
func Centrality(g *graph.Graph) map[string]float64 {
	centrality := make(map[string]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		centrality[n.ID] = 0
	}

	for _, s := range g.Nodes {
		stack := []string{}
		predecessors := make(map[string][]string)
		sigma := make(map[string]float64)
		dist := make(map[string]int)
		for _, n := range g.Nodes {
			sigma[n.ID] = 0
			dist[n.ID] = -1
		}
		sigma[s.ID] = 1
		dist[s.ID] = 0

		queue := []string{s.ID}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.Successors(v) {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		delta := make(map[string]float64)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				if sigma[w] != 0 {
					delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
				}
			}
			if w != s.ID {
				centrality[w] += delta[w]
			}
		}
	}

	if n := len(g.Nodes); n > 2 {
		scale := 1.0 / float64((n-1)*(n-2))
		for id := range centrality {
			centrality[id] *= scale
		}
	}
	return centrality
}

// Bottlenecks returns the node IDs whose centrality exceeds the fixed
// threshold used to flag structurally critical services.
func Bottlenecks(g *graph.Graph) []string {
	centrality := Centrality(g)
	var out []string
	for _, n := range g.Nodes {
		if centrality[n.ID] > bottleneckThreshold {
			out = append(out, n.ID)
		}
	}
	return out
}
