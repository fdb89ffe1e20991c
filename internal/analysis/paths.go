package analysis

import (
	"sort"

	"github.com/nexarch/core/internal/graph"
)

// minCriticalPathLength is the fewest nodes a path needs to be surfaced
// as "critical" — chains of 2 hops or fewer are unremarkable.
const minCriticalPathLength = 4

// maxCriticalPaths bounds how many paths CriticalPaths returns, longest
// first.
const maxCriticalPaths = 5

// CriticalPaths finds the longest source-to-sink chains in the graph:
// paths starting at a node with no predecessors and ending at a node
// with no successors, of at least minCriticalPathLength nodes. Self
// loops are ignored, so a node whose only predecessor or successor is
// itself still counts as a source or sink.
func CriticalPaths(g *graph.Graph) [][]string {
	sources := []string{}
	sinks := map[string]bool{}
	for _, n := range g.Nodes {
		preds := nonSelfPredecessors(g, n.ID)
		succs := nonSelfSuccessors(g, n.ID)
		if len(preds) == 0 {
			sources = append(sources, n.ID)
		}
		if len(succs) == 0 {
			sinks[n.ID] = true
		}
	}

	var paths [][]string
	for _, source := range sources {
		path := longestSimplePath(g, source, sinks, map[string]bool{source: true})
		if len(path) >= minCriticalPathLength {
			paths = append(paths, path)
		}
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return len(paths[i]) > len(paths[j])
	})
	if len(paths) > maxCriticalPaths {
		paths = paths[:maxCriticalPaths]
	}
	return paths
}

// longestSimplePath performs a depth-first search for the longest
// simple path from current to any sink, never revisiting a node. It
// returns nil when no sink is reachable without revisiting a node.
func longestSimplePath(g *graph.Graph, current string, sinks map[string]bool, visited map[string]bool) []string {
	var best []string
	if sinks[current] {
		best = []string{current}
	}
	for _, next := range nonSelfSuccessors(g, current) {
		if visited[next] {
			continue
		}
		visited[next] = true
		rest := longestSimplePath(g, next, sinks, visited)
		visited[next] = false
		if rest == nil {
			continue
		}
		candidate := append([]string{current}, rest...)
		if len(candidate) > len(best) {
			best = candidate
		}
	}
	return best
}

func nonSelfSuccessors(g *graph.Graph, id string) []string {
	var out []string
	for _, s := range g.Successors(id) {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}

func nonSelfPredecessors(g *graph.Graph, id string) []string {
	var out []string
	for _, p := range g.Predecessors(id) {
		if p != id {
			out = append(out, p)
		}
	}
	return out
}

// Cycles returns one entry per cyclic strongly connected component, as
// the component's node IDs in sorted order, detected via the same
// strongly-connected-component pass depth analysis uses: any nontrivial
// component (or a node with a self loop) contains at least one cycle.
// Individual simple cycles within a component are not enumerated.
func Cycles(g *graph.Graph) [][]string {
	comps, _ := condense(g)
	var cycles [][]string
	for _, comp := range comps {
		if len(comp) > 1 {
			sort.Strings(comp)
			cycles = append(cycles, comp)
			continue
		}
		id := comp[0]
		if e, ok := g.Edge(id, id); ok {
			_ = e
			cycles = append(cycles, []string{id})
		}
	}
	return cycles
}
