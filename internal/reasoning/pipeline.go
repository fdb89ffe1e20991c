package reasoning

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nexarch/core/internal/analysis"
	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/rules"
)

// Run executes the full pipeline over g: detect, classify, analyze,
// select strategies, then either finalize immediately (no issues) or
// fan out the three generators and finalize once all have returned.
func Run(ctx context.Context, engine *rules.Engine, g *graph.Graph) (State, error) {
	state := State{}

	state.Issues = detect(engine, g)
	state.Categories = classify(state.Issues)
	state.Strategies = analyzeAndSelect(g, state.Categories)

	if len(state.Issues) == 0 {
		state.AnalysisComplete = true
		return state, nil
	}

	workflows, err := generateAll(ctx, g, state.Issues, state.Strategies)
	if err != nil {
		return state, err
	}
	state.Workflows = workflows
	state.AnalysisComplete = true
	return state, nil
}

func detect(engine *rules.Engine, g *graph.Graph) []models.Issue {
	return engine.Detect(g)
}

func classify(issues []models.Issue) IssueCategories {
	var cats IssueCategories
	for _, issue := range issues {
		switch issue.Type {
		case models.IssueHighLatencyEdge, models.IssueDeepSyncChain:
			cats.Performance = append(cats.Performance, issue)
		case models.IssueHighErrorRate, models.IssueSinglePointFailure:
			cats.Reliability = append(cats.Reliability, issue)
		case models.IssueFanOutOverload:
			cats.Coupling = append(cats.Coupling, issue)
		}
	}
	return cats
}

func analyzeAndSelect(g *graph.Graph, cats IssueCategories) StrategySelection {
	summary := analysis.Analyze(g)

	needsAsync := false
	for _, issue := range cats.Performance {
		if issue.Type == models.IssueDeepSyncChain {
			needsAsync = true
			break
		}
	}

	needsCaching := false
	for _, issue := range cats.Performance {
		if issue.Type != models.IssueHighLatencyEdge || len(issue.AffectedNodes) < 2 {
			continue
		}
		target := issue.AffectedNodes[1]
		if n, ok := g.Node(target); ok && n.Type == models.NodeTypeDatabase {
			needsCaching = true
			break
		}
	}

	return StrategySelection{
		NeedsCaching:         needsCaching,
		NeedsAsyncDecoupling: needsAsync,
		NeedsCircuitBreaker:  anyOfType(cats.Reliability, models.IssueHighErrorRate),
		NeedsBulkhead:        anyOfType(cats.Reliability, models.IssueSinglePointFailure),
		NeedsConsolidation:   len(cats.Coupling) > 0,
		GraphAnalysis:        summary,
	}
}

func anyOfType(issues []models.Issue, t models.IssueType) bool {
	for _, issue := range issues {
		if issue.Type == t {
			return true
		}
	}
	return false
}

// generateAll runs the three generators concurrently and appends their
// results in the fixed order minimal, performance, cost — regardless of
// which finishes first.
func generateAll(ctx context.Context, graphSnapshot *graph.Graph, issues []models.Issue, strategies StrategySelection) ([]models.Workflow, error) {
	results := make([]models.Workflow, 3)

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		results[0] = generateMinimal(issues, graphSnapshot)
		return nil
	})
	eg.Go(func() error {
		results[1] = generatePerformance(issues, graphSnapshot, strategies)
		return nil
	})
	eg.Go(func() error {
		results[2] = generateCost(issues, strategies)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
