package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/models"
)

func chainGraph(n int) *graph.Graph {
	nodes := make([]models.Node, n)
	var edges []models.Edge
	for i := 0; i < n; i++ {
		nodes[i] = models.Node{ID: string(rune('a' + i))}
		if i > 0 {
			edges = append(edges, models.Edge{Source: string(rune('a' + i - 1)), Target: string(rune('a' + i))})
		}
	}
	return graph.New(nodes, edges)
}

func TestDepths_LinearChain(t *testing.T) {
	g := chainGraph(4) // a -> b -> c -> d, depth(a) = 3
	depths := Depths(g)
	assert.Equal(t, 3, depths["a"])
	assert.Equal(t, 0, depths["d"])
}

func TestDepths_CycleCondensed(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		[]models.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
			{Source: "b", Target: "c"},
		},
	)
	depths := Depths(g)
	// a and b are in one SCC; that SCC has an edge to c, so depth = 1 for both.
	assert.Equal(t, 1, depths["a"])
	assert.Equal(t, 1, depths["b"])
	assert.Equal(t, 0, depths["c"])
}

func TestCycles_DetectsSimpleCycle(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "a"}, {ID: "b"}},
		[]models.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "a"}},
	)
	cycles := Cycles(g)
	assert.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, cycles[0])
}

func TestCycles_SelfLoop(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "a"}},
		[]models.Edge{{Source: "a", Target: "a"}},
	)
	cycles := Cycles(g)
	assert.Equal(t, [][]string{{"a"}}, cycles)
}
