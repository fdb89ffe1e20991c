// Package rules implements the Issue Detector: a fixed set of
// deterministic rules over a reconstructed graph, each emitting
// evidence-backed Issues. A rule failing internally is logged and
// skipped; the remaining rules still run, per the Issue Detector's
// infallibility contract.
package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nexarch/core/internal/analysis"
	"github.com/nexarch/core/internal/config"
	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/models"
)

// Engine runs the fixed rule set against a graph using the tenant's
// configured thresholds.
type Engine struct {
	thresholds config.ThresholdConfig
	log        zerolog.Logger
}

// New builds an Engine bound to a set of thresholds.
func New(thresholds config.ThresholdConfig, log zerolog.Logger) *Engine {
	return &Engine{thresholds: thresholds, log: log}
}

// Detect runs every rule over g and returns the union of their issues.
func (e *Engine) Detect(g *graph.Graph) []models.Issue {
	var issues []models.Issue
	for _, rule := range []func(*graph.Graph) []models.Issue{
		e.highLatencyEdges,
		e.deepSyncChains,
		e.highErrorRateNodes,
		e.fanOutOverload,
		e.singlePointOfFailure,
	} {
		issues = append(issues, e.runSafely(rule, g)...)
	}
	return issues
}

func (e *Engine) runSafely(rule func(*graph.Graph) []models.Issue, g *graph.Graph) (result []models.Issue) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("issue rule failed, skipping")
			result = nil
		}
	}()
	return rule(g)
}

func (e *Engine) highLatencyEdges(g *graph.Graph) []models.Issue {
	var out []models.Issue
	threshold := e.thresholds.HighLatencyMS
	for _, edge := range g.Edges {
		if edge.AvgLatencyMS <= threshold {
			continue
		}
		out = append(out, models.Issue{
			ID:            issueID(models.IssueHighLatencyEdge, []string{edge.Source, edge.Target}),
			Type:          models.IssueHighLatencyEdge,
			Severity:      models.SeverityHigh,
			Description:   fmt.Sprintf("Edge %s → %s has high latency (%.0fms)", edge.Source, edge.Target, edge.AvgLatencyMS),
			AffectedNodes: []string{edge.Source, edge.Target},
			MetricValue:   edge.AvgLatencyMS,
			Evidence: map[string]interface{}{
				"threshold":  threshold,
				"actual":     edge.AvgLatencyMS,
				"call_count": edge.CallCount,
			},
		})
	}
	return out
}

func (e *Engine) deepSyncChains(g *graph.Graph) []models.Issue {
	var out []models.Issue
	threshold := e.thresholds.DepthMax
	depths := analysis.Depths(g)
	for _, n := range g.Nodes {
		depth := depths[n.ID]
		if depth <= threshold {
			continue
		}
		out = append(out, models.Issue{
			ID:            issueID(models.IssueDeepSyncChain, []string{n.ID}),
			Type:          models.IssueDeepSyncChain,
			Severity:      models.SeverityMedium,
			Description:   fmt.Sprintf("Service %s has deep sync chain (depth=%d)", n.ID, depth),
			AffectedNodes: []string{n.ID},
			MetricValue:   float64(depth),
			Evidence: map[string]interface{}{
				"threshold":    threshold,
				"actual":       depth,
				"actual_depth": depth,
			},
		})
	}
	return out
}

func (e *Engine) highErrorRateNodes(g *graph.Graph) []models.Issue {
	var out []models.Issue
	threshold := e.thresholds.ErrorRateMax
	for _, n := range g.Nodes {
		if n.Metrics.CallCount == 0 || n.Metrics.ErrorRate <= threshold {
			continue
		}
		out = append(out, models.Issue{
			ID:            issueID(models.IssueHighErrorRate, []string{n.ID}),
			Type:          models.IssueHighErrorRate,
			Severity:      models.SeverityCritical,
			Description:   fmt.Sprintf("Service %s has high error rate (%.1f%%)", n.ID, n.Metrics.ErrorRate*100),
			AffectedNodes: []string{n.ID},
			MetricValue:   n.Metrics.ErrorRate,
			Evidence: map[string]interface{}{
				"threshold":  threshold,
				"actual":     n.Metrics.ErrorRate,
				"call_count": n.Metrics.CallCount,
			},
		})
	}
	return out
}

func (e *Engine) fanOutOverload(g *graph.Graph) []models.Issue {
	var out []models.Issue
	threshold := e.thresholds.FanOutMax
	for _, n := range g.Nodes {
		outDegree := g.OutDegree(n.ID)
		if outDegree <= threshold {
			continue
		}
		targets := append([]string{}, g.Successors(n.ID)...)
		sort.Strings(targets)
		out = append(out, models.Issue{
			ID:            issueID(models.IssueFanOutOverload, []string{n.ID}),
			Type:          models.IssueFanOutOverload,
			Severity:      models.SeverityMedium,
			Description:   fmt.Sprintf("Service %s calls too many services (%d)", n.ID, outDegree),
			AffectedNodes: []string{n.ID},
			MetricValue:   float64(outDegree),
			Evidence: map[string]interface{}{
				"threshold": threshold,
				"actual":    outDegree,
				"targets":   targets,
			},
		})
	}
	return out
}

func (e *Engine) singlePointOfFailure(g *graph.Graph) []models.Issue {
	var out []models.Issue
	threshold := e.thresholds.InDegreeMax
	for _, n := range g.Nodes {
		inDegree := g.InDegree(n.ID)
		if inDegree <= threshold {
			continue
		}
		dependents := append([]string{}, g.Predecessors(n.ID)...)
		sort.Strings(dependents)
		out = append(out, models.Issue{
			ID:            issueID(models.IssueSinglePointFailure, []string{n.ID}),
			Type:          models.IssueSinglePointFailure,
			Severity:      models.SeverityHigh,
			Description:   fmt.Sprintf("Service %s is a single point of failure with %d dependents", n.ID, inDegree),
			AffectedNodes: []string{n.ID},
			MetricValue:   float64(inDegree),
			Evidence: map[string]interface{}{
				"threshold":          threshold,
				"actual":             inDegree,
				"dependent_services": dependents,
				"in_degree":          inDegree,
			},
		})
	}
	return out
}

// issueID derives a stable ID from the rule type and the sorted set of
// affected nodes, so two analyses of the same graph reproduce identical
// issue IDs.
func issueID(issueType models.IssueType, affected []string) string {
	sorted := append([]string{}, affected...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(string(issueType) + "|" + strings.Join(sorted, ",")))
	return string(issueType) + "-" + hex.EncodeToString(sum[:])[:12]
}
