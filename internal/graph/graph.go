// Package graph implements the Graph Builder: it turns a tenant's span
// history into a directed graph with typed, metric-annotated nodes and
// edges. The graph is always derived on demand from a private snapshot,
// never itself persisted.
package graph

import "github.com/nexarch/core/internal/models"

// Graph is the dependency graph reconstructed from a span snapshot. It
// exposes adjacency in both directions so downstream analysis (depth,
// centrality, cycle detection) doesn't need to rebuild an index.
type Graph struct {
	Nodes []models.Node
	Edges []models.Edge

	byID    map[string]models.Node
	outAdj  map[string][]string
	inAdj   map[string][]string
	edgeIdx map[[2]string]models.Edge
}

// New indexes a flat node/edge list into a queryable Graph.
func New(nodes []models.Node, edges []models.Edge) *Graph {
	g := &Graph{
		Nodes:   nodes,
		Edges:   edges,
		byID:    make(map[string]models.Node, len(nodes)),
		outAdj:  make(map[string][]string),
		inAdj:   make(map[string][]string),
		edgeIdx: make(map[[2]string]models.Edge, len(edges)),
	}
	for _, n := range nodes {
		g.byID[n.ID] = n
	}
	for _, e := range edges {
		g.outAdj[e.Source] = append(g.outAdj[e.Source], e.Target)
		g.inAdj[e.Target] = append(g.inAdj[e.Target], e.Source)
		g.edgeIdx[[2]string{e.Source, e.Target}] = e
	}
	return g
}

// Node looks up a node by identity.
func (g *Graph) Node(id string) (models.Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Edge looks up the edge between source and target, if any.
func (g *Graph) Edge(source, target string) (models.Edge, bool) {
	e, ok := g.edgeIdx[[2]string{source, target}]
	return e, ok
}

// Successors returns the node IDs id has an outgoing edge to.
func (g *Graph) Successors(id string) []string {
	return g.outAdj[id]
}

// Predecessors returns the node IDs with an outgoing edge to id.
func (g *Graph) Predecessors(id string) []string {
	return g.inAdj[id]
}

// OutDegree is the fan-out of id: the number of distinct successors.
func (g *Graph) OutDegree(id string) int {
	return len(g.outAdj[id])
}

// InDegree is the fan-in of id: the number of distinct predecessors.
func (g *Graph) InDegree(id string) int {
	return len(g.inAdj[id])
}
