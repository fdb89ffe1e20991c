package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/models"
)

func TestCentrality_HubHasHighestScore(t *testing.T) {
	// star topology: a -> hub -> b, c -> hub -> d
	g := graph.New(
		[]models.Node{{ID: "a"}, {ID: "hub"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		[]models.Edge{
			{Source: "a", Target: "hub"},
			{Source: "hub", Target: "b"},
			{Source: "c", Target: "hub"},
			{Source: "hub", Target: "d"},
		},
	)
	centrality := Centrality(g)
	for _, id := range []string{"a", "b", "c", "d"} {
		assert.LessOrEqual(t, centrality[id], centrality["hub"])
	}
}

func TestBottlenecks_EmptyOnLinearChain(t *testing.T) {
	g := chainGraph(3)
	assert.Empty(t, Bottlenecks(g))
}
