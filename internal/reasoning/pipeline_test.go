package reasoning

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexarch/core/internal/config"
	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/rules"
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

func TestRun_NoIssuesYieldsEmptyWorkflows(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "a", Metrics: models.NodeMetrics{CallCount: 5, ErrorRate: 0}}, {ID: "b"}},
		[]models.Edge{{Source: "a", Target: "b", AvgLatencyMS: 20, CallCount: 5}},
	)
	engine := rules.New(defaultThresholds(), zerolog.Nop())

	state, err := Run(context.Background(), engine, g)
	require.NoError(t, err)
	assert.Empty(t, state.Issues)
	assert.Empty(t, state.Workflows)
	assert.True(t, state.AnalysisComplete)
}

func TestRun_EmitsThreeWorkflowsInFixedOrder(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "checkout"}, {ID: "postgres://users", Type: models.NodeTypeDatabase}},
		[]models.Edge{{Source: "checkout", Target: "postgres://users", AvgLatencyMS: 2000, CallCount: 20}},
	)
	engine := rules.New(defaultThresholds(), zerolog.Nop())

	state, err := Run(context.Background(), engine, g)
	require.NoError(t, err)
	require.Len(t, state.Workflows, 3)
	assert.Equal(t, "Minimal Change", state.Workflows[0].Name)
	assert.Equal(t, "Performance Optimized", state.Workflows[1].Name)
	assert.Equal(t, "Cost Optimized", state.Workflows[2].Name)

	assert.LessOrEqual(t, state.Workflows[0].ComplexityScore, 3)
	assert.LessOrEqual(t, state.Workflows[0].RiskScore, 2)

	require.True(t, state.Strategies.NeedsCaching)
	require.Len(t, state.Workflows[0].ProposedChanges, 1)
	cachingChange := state.Workflows[0].ProposedChanges[0]
	assert.Equal(t, "caching", cachingChange.Type)
	assert.Equal(t, "postgres://users", cachingChange.Target)
	assert.Contains(t, cachingChange.Impact, "database load")
}

func TestSelectStrategies_CachingRequiresDatabaseTarget(t *testing.T) {
	g := graph.New(
		[]models.Node{{ID: "checkout"}, {ID: "billing", Type: models.NodeTypeService}},
		[]models.Edge{{Source: "checkout", Target: "billing", AvgLatencyMS: 2000, CallCount: 20}},
	)
	engine := rules.New(defaultThresholds(), zerolog.Nop())

	state, err := Run(context.Background(), engine, g)
	require.NoError(t, err)
	assert.False(t, state.Strategies.NeedsCaching)
}

func TestSelectStrategies_CircuitBreakerOnlyOnHighErrorRate(t *testing.T) {
	g := graph.New(
		[]models.Node{
			{ID: "hub", Metrics: models.NodeMetrics{CallCount: 100, ErrorRate: 0}},
			{ID: "d1"}, {ID: "d2"}, {ID: "d3"}, {ID: "d4"}, {ID: "d5"}, {ID: "d6"},
		},
		[]models.Edge{
			{Source: "d1", Target: "hub"}, {Source: "d2", Target: "hub"}, {Source: "d3", Target: "hub"},
			{Source: "d4", Target: "hub"}, {Source: "d5", Target: "hub"}, {Source: "d6", Target: "hub"},
		},
	)
	engine := rules.New(defaultThresholds(), zerolog.Nop())

	state, err := Run(context.Background(), engine, g)
	require.NoError(t, err)
	require.NotEmpty(t, state.Categories.Reliability) // single-point-of-failure fires
	assert.False(t, state.Strategies.NeedsCircuitBreaker)
}

func TestClassify_BucketsByCategory(t *testing.T) {
	issues := []models.Issue{
		{Type: models.IssueHighLatencyEdge},
		{Type: models.IssueDeepSyncChain},
		{Type: models.IssueHighErrorRate},
		{Type: models.IssueSinglePointFailure},
		{Type: models.IssueFanOutOverload},
	}
	cats := classify(issues)
	assert.Len(t, cats.Performance, 2)
	assert.Len(t, cats.Reliability, 2)
	assert.Len(t, cats.Coupling, 1)
}
