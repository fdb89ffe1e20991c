// Package reasoning reifies the Reasoning Pipeline as a sequence of pure
// functions over an explicit State value: detect, classify, analyze,
// select strategies, then a conditional fan-out into up to three
// workflow generators. There is no external state graph runtime — each
// stage is an ordinary function call, and the one conditional branch is
// an ordinary if statement.
package reasoning

import (
	"github.com/nexarch/core/internal/analysis"
	"github.com/nexarch/core/internal/models"
)

// IssueCategories buckets issues by the concern they threaten.
type IssueCategories struct {
	Performance []models.Issue
	Reliability []models.Issue
	Coupling    []models.Issue
}

// StrategySelection records which remediation strategies the graph's
// current issues justify.
type StrategySelection struct {
	NeedsCaching         bool
	NeedsAsyncDecoupling bool
	NeedsCircuitBreaker  bool
	NeedsBulkhead        bool
	NeedsConsolidation   bool
	GraphAnalysis        analysis.Summary
}

// State carries the pipeline's accumulated output across stages.
type State struct {
	Issues             []models.Issue
	Categories         IssueCategories
	Strategies         StrategySelection
	Workflows          []models.Workflow
	AnalysisComplete   bool
}
