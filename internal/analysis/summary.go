package analysis

import "github.com/nexarch/core/internal/graph"

// Summary is the full architecture analysis surfaced alongside the
// graph: structural properties beyond the raw node/edge list.
type Summary struct {
	NodeCount     int         `json:"node_count"`
	EdgeCount     int         `json:"edge_count"`
	CriticalPaths [][]string  `json:"critical_paths"`
	Bottlenecks   []string    `json:"bottlenecks"`
	Cycles        [][]string  `json:"cycles"`
	AverageDegree float64     `json:"average_degree"`
	IsDAG         bool        `json:"is_dag"`
}

// Analyze runs the full structural analysis suite over a graph.
func Analyze(g *graph.Graph) Summary {
	nodeCount := len(g.Nodes)
	cycles := Cycles(g)

	var totalDegree int
	for _, n := range g.Nodes {
		totalDegree += g.OutDegree(n.ID) + g.InDegree(n.ID)
	}
	avgDegree := 0.0
	if nodeCount > 0 {
		avgDegree = float64(totalDegree) / float64(nodeCount)
	}

	return Summary{
		NodeCount:     nodeCount,
		EdgeCount:     len(g.Edges),
		CriticalPaths: CriticalPaths(g),
		Bottlenecks:   Bottlenecks(g),
		Cycles:        cycles,
		AverageDegree: avgDegree,
		IsDAG:         len(cycles) == 0,
	}
}
