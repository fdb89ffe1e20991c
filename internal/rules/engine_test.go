package rules

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexarch/core/internal/config"
	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/models"
)

func defaultThresholds() config.ThresholdConfig {
	return config.ThresholdConfig{
		HighLatencyMS: 1000,
		ErrorRateMax:  0.05,
		DepthMax:      5,
		FanOutMax:     10,
		InDegreeMax:   5,
	}
}

func TestHighLatencyEdge(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "a"}, {ID: "b"}},
		[]models.Edge{{Source: "a", Target: "b", AvgLatencyMS: 1500, CallCount: 10}},
	)

	engine := New(defaultThresholds(), zerolog.Nop())
	issues := engine.Detect(g)

	require.Len(t, issues, 1)
	assert.Equal(t, models.IssueHighLatencyEdge, issues[0].Type)
	assert.Equal(t, models.SeverityHigh, issues[0].Severity)
	assert.ElementsMatch(t, []string{"a", "b"}, issues[0].AffectedNodes)
}

func TestHighErrorRateNode(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "svc", Metrics: models.NodeMetrics{CallCount: 100, ErrorRate: 0.1}}},
		nil,
	)
	engine := New(defaultThresholds(), zerolog.Nop())
	issues := engine.Detect(g)

	require.Len(t, issues, 1)
	assert.Equal(t, models.IssueHighErrorRate, issues[0].Type)
	assert.Equal(t, models.SeverityCritical, issues[0].Severity)
}

func TestFanOutOverload(t *testing.T) {
	nodes := []models.Node{{ID: "hub"}}
	var edges []models.Edge
	for i := 0; i < 11; i++ {
		target := string(rune('A' + i))
		nodes = append(nodes, models.Node{ID: target})
		edges = append(edges, models.Edge{Source: "hub", Target: target})
	}
	g := graph.New(nodes, edges)

	engine := New(defaultThresholds(), zerolog.Nop())
	issues := engine.Detect(g)

	var found bool
	for _, issue := range issues {
		if issue.Type == models.IssueFanOutOverload {
			found = true
			assert.Equal(t, []string{"hub"}, issue.AffectedNodes)
		}
	}
	assert.True(t, found)
}

func TestSinglePointOfFailure(t *testing.T) {
	nodes := []models.Node{{ID: "shared"}}
	var edges []models.Edge
	for i := 0; i < 6; i++ {
		source := string(rune('A' + i))
		nodes = append(nodes, models.Node{ID: source})
		edges = append(edges, models.Edge{Source: source, Target: "shared"})
	}
	g := graph.New(nodes, edges)

	engine := New(defaultThresholds(), zerolog.Nop())
	issues := engine.Detect(g)

	var found bool
	for _, issue := range issues {
		if issue.Type == models.IssueSinglePointFailure {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNoIssuesOnCleanGraph(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "a", Metrics: models.NodeMetrics{CallCount: 10, ErrorRate: 0.01}}, {ID: "b"}},
		[]models.Edge{{Source: "a", Target: "b", AvgLatencyMS: 50, CallCount: 10}},
	)
	engine := New(defaultThresholds(), zerolog.Nop())
	assert.Empty(t, engine.Detect(g))
}

func TestIssueIDStability(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "a"}, {ID: "b"}},
		[]models.Edge{{Source: "a", Target: "b", AvgLatencyMS: 2000, CallCount: 5}},
	)
	engine := New(defaultThresholds(), zerolog.Nop())

	first := engine.Detect(g)
	second := engine.Detect(g)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}
