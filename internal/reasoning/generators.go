package reasoning

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/models"
)

// generateMinimal looks only at the first three issues in detection
// order. A high-latency-edge issue among them gets a caching change and
// a high-error-rate issue gets a circuit-breaker change; the other issue
// types get no change of their own. When none of the three produces a
// change, a single monitoring change is proposed instead. It stays within
// the minimal workflow's complexity_score ≤ 3, risk_score ≤ 2 bounds.
func generateMinimal(issues []models.Issue, g *graph.Graph) models.Workflow {
	top := issues
	if len(top) > 3 {
		top = top[:3]
	}

	var changes []models.WorkflowChange
	for _, issue := range top {
		switch issue.Type {
		case models.IssueHighLatencyEdge:
			target, isDatabase := databaseTarget(issue.AffectedNodes, g)
			impact := "Reduce latency by 30-50%"
			if isDatabase {
				impact = "Reduce latency and database load by 30-50%"
			}
			changes = append(changes, models.WorkflowChange{
				Type:        "caching",
				Target:      target,
				Description: fmt.Sprintf("Add cache layer in front of %s", target),
				Impact:      impact,
			})
		case models.IssueHighErrorRate:
			target := firstOr(issue.AffectedNodes, "unknown")
			changes = append(changes, models.WorkflowChange{
				Type:        "resilience",
				Target:      target,
				Description: fmt.Sprintf("Add circuit breaker to %s", target),
				Impact:      "Prevent cascade failures",
			})
		}
	}
	if len(changes) == 0 {
		changes = append(changes, models.WorkflowChange{
			Type:        "monitoring",
			Target:      "all",
			Description: "Enhance observability across affected services",
			Impact:      "Better visibility into failure modes",
		})
	}

	return models.Workflow{
		ID:              "workflow-" + shortID(),
		Name:            "Minimal Change",
		Description:     "Quick fixes with minimal infrastructure changes",
		ProposedChanges: changes,
		Pros:            []string{"Low risk", "Fast implementation", "Minimal downtime"},
		Cons:            []string{"Limited impact", "May not solve root causes"},
		ComplexityScore: 2,
		RiskScore:       1,
		ExpectedImpact: map[string]string{
			"latency_improvement": "10-20%",
			"error_reduction":     "20-30%",
			"cost_increase":       "5-10%",
		},
	}
}

// generatePerformance applies every performance-relevant strategy
// maximally, targeting the largest latency/throughput gains. Bounds:
// complexity_score 5-8, risk_score 3-6.
func generatePerformance(issues []models.Issue, g *graph.Graph, strategies StrategySelection) models.Workflow {
	var changes []models.WorkflowChange

	if strategies.NeedsCaching {
		latencyIssues := filterByType(issues, models.IssueHighLatencyEdge)
		if len(latencyIssues) > 2 {
			latencyIssues = latencyIssues[:2]
		}
		for _, issue := range latencyIssues {
			target, isDatabase := databaseTarget(issue.AffectedNodes, g)
			impact := "50-70% latency reduction"
			if isDatabase {
				impact = "50-70% latency reduction and lower database load"
			}
			changes = append(changes, models.WorkflowChange{
				Type:        "distributed_cache",
				Target:      target,
				Description: fmt.Sprintf("Implement a distributed cache in front of %s", target),
				Impact:      impact,
			})
		}
	}

	if strategies.NeedsAsyncDecoupling {
		changes = append(changes, models.WorkflowChange{
			Type:        "async_pattern",
			Target:      "architecture",
			Description: "Convert synchronous call chains to async via a message queue",
			Impact:      "Decouple services, improve throughput",
		})
	}

	if strategies.NeedsCircuitBreaker {
		changes = append(changes, models.WorkflowChange{
			Type:        "circuit_breaker",
			Target:      "architecture",
			Description: "Add circuit breakers around high error-rate dependencies",
			Impact:      "Contain failures before they cascade",
		})
	}

	if strategies.NeedsBulkhead {
		changes = append(changes, models.WorkflowChange{
			Type:        "bulkhead",
			Target:      "architecture",
			Description: "Isolate single points of failure behind bulkheads and add redundant instances",
			Impact:      "Limit blast radius when a dependency fails",
		})
	}

	if len(changes) == 0 {
		changes = append(changes, models.WorkflowChange{
			Type:        "optimization",
			Target:      "architecture",
			Description: "Add CDN and edge caching",
			Impact:      "Global latency reduction",
		})
	}

	return models.Workflow{
		ID:              "workflow-" + shortID(),
		Name:            "Performance Optimized",
		Description:     "Maximize throughput and reduce latency",
		ProposedChanges: changes,
		Pros:            []string{"Significant latency reduction", "Better scalability", "Improved user experience"},
		Cons:            []string{"Higher cost", "More complexity", "Longer implementation"},
		ComplexityScore: 6,
		RiskScore:       4,
		ExpectedImpact: map[string]string{
			"latency_improvement": "50-70%",
			"error_reduction":     "10-20%",
			"cost_increase":       "30-50%",
		},
	}
}

// generateCost focuses on consolidation, batching, and right-sizing.
// Bounds: complexity_score 3-6, risk_score 2-4, negative cost delta.
func generateCost(issues []models.Issue, strategies StrategySelection) models.Workflow {
	var changes []models.WorkflowChange

	if strategies.NeedsConsolidation {
		fanOut := filterByType(issues, models.IssueFanOutOverload)
		if len(fanOut) > 1 {
			fanOut = fanOut[:1]
		}
		for _, issue := range fanOut {
			target := firstOr(issue.AffectedNodes, "unknown")
			changes = append(changes, models.WorkflowChange{
				Type:        "consolidation",
				Target:      target,
				Description: fmt.Sprintf("Consolidate downstream calls originating from %s", target),
				Impact:      "Reduce outbound call volume by ~40%",
			})
		}
	}

	errorIssues := filterByType(issues, models.IssueHighErrorRate)
	if len(errorIssues) > 1 {
		errorIssues = errorIssues[:1]
	}
	for _, issue := range errorIssues {
		target := firstOr(issue.AffectedNodes, "unknown")
		changes = append(changes, models.WorkflowChange{
			Type:        "retry_optimization",
			Target:      target,
			Description: fmt.Sprintf("Tune retry and backoff policy in %s", target),
			Impact:      "Reduce wasted retry compute",
		})
	}

	if len(changes) == 0 {
		changes = append(changes, models.WorkflowChange{
			Type:        "right_sizing",
			Target:      "infrastructure",
			Description: "Right-size over-provisioned service instances",
			Impact:      "20-30% cost reduction",
		})
	}

	return models.Workflow{
		ID:              "workflow-" + shortID(),
		Name:            "Cost Optimized",
		Description:     "Reduce operational costs while preserving reliability",
		ProposedChanges: changes,
		Pros:            []string{"Lower operational cost", "Better resource utilization", "Reduced waste"},
		Cons:            []string{"May impact peak performance", "Requires ongoing monitoring"},
		ComplexityScore: 4,
		RiskScore:       3,
		ExpectedImpact: map[string]string{
			"latency_improvement": "5-10%",
			"error_reduction":     "15-25%",
			"cost_increase":       "-20% to -30%",
		},
	}
}

func filterByType(issues []models.Issue, t models.IssueType) []models.Issue {
	var out []models.Issue
	for _, issue := range issues {
		if issue.Type == t {
			out = append(out, issue)
		}
	}
	return out
}

func firstOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}

// databaseTarget picks the database-typed node among an issue's affected
// nodes, if any, since caching belongs in front of the callee being
// hammered, not the caller. Falls back to the first affected node.
func databaseTarget(nodes []string, g *graph.Graph) (target string, isDatabase bool) {
	for _, id := range nodes {
		if n, ok := g.Node(id); ok && n.Type == models.NodeTypeDatabase {
			return id, true
		}
	}
	return firstOr(nodes, "unknown"), false
}

func shortID() string {
	return uuid.New().String()[:8]
}
