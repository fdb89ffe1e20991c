package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexarch/core/internal/auth"
	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/reasoning"
	"github.com/nexarch/core/internal/rules"
	"github.com/nexarch/core/internal/telemetry"
)

func registerWorkflowRoutes(api *gin.RouterGroup, deps Deps) {
	api.GET("/workflows/generated", func(c *gin.Context) { workflowsGenerated(c, deps) })
	api.GET("/workflows/comparison", func(c *gin.Context) { workflowsComparison(c, deps) })
}

func runReasoning(c *gin.Context, deps Deps, tenant string) (reasoning.State, bool) {
	g, ok := buildGraph(c, deps, tenant)
	if !ok {
		return reasoning.State{}, false
	}
	engine := rules.New(deps.Config.Thresholds, deps.Log)
	state, err := reasoning.Run(c.Request.Context(), engine, g)
	if err != nil {
		respondError(c, err)
		return reasoning.State{}, false
	}
	return state, true
}

func workflowsGenerated(c *gin.Context, deps Deps) {
	start := time.Now()
	defer func() { telemetry.ObserveReadDuration("workflows_generated", time.Since(start)) }()

	tenant := auth.TenantFromContext(c)

	var cached gin.H
	if deps.Cache != nil && deps.Cache.Get(c.Request.Context(), tenant, "workflows", &cached) {
		c.JSON(200, cached)
		return
	}

	state, ok := runReasoning(c, deps, tenant)
	if !ok {
		return
	}

	augmentDescriptions(c, deps, state.Workflows)

	body := gin.H{
		"workflows":    state.Workflows,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if deps.Cache != nil {
		_ = deps.Cache.Set(c.Request.Context(), tenant, "workflows", body)
	}
	c.JSON(200, body)
}

func workflowsComparison(c *gin.Context, deps Deps) {
	start := time.Now()
	defer func() { telemetry.ObserveReadDuration("workflows_comparison", time.Since(start)) }()

	tenant := auth.TenantFromContext(c)

	state, ok := runReasoning(c, deps, tenant)
	if !ok {
		return
	}

	comparison := gin.H{
		"complexity": scoresByName(state.Workflows, func(w models.Workflow) int { return w.ComplexityScore }),
		"risk":       scoresByName(state.Workflows, func(w models.Workflow) int { return w.RiskScore }),
		"changes":    scoresByName(state.Workflows, func(w models.Workflow) int { return len(w.ProposedChanges) }),
	}

	recommendation := "no workflows available"
	if len(state.Workflows) > 0 {
		recommendation = recommend(state.Workflows) + " is recommended for balanced risk/complexity"
	}

	c.JSON(200, gin.H{
		"workflows":         state.Workflows,
		"recommendation":    recommendation,
		"comparison_matrix": comparison,
	})
}

// augmentDescriptions replaces each workflow's description with model-
// generated prose when augmentation is enabled and reachable. It mutates
// workflows in place; any failure leaves the original description, since
// augmentation is best-effort and must never fail the read.
func augmentDescriptions(c *gin.Context, deps Deps, workflows []models.Workflow) {
	if !deps.Config.Augment.Enabled || deps.Augment == nil {
		return
	}
	for i := range workflows {
		workflows[i].Description = deps.Augment.Describe(c.Request.Context(), workflows[i])
	}
}

func scoresByName(workflows []models.Workflow, score func(models.Workflow) int) map[string]int {
	out := make(map[string]int, len(workflows))
	for _, w := range workflows {
		out[w.Name] = score(w)
	}
	return out
}

// recommend picks the workflow with the smallest complexity+risk sum,
// breaking ties in favor of the minimal workflow. Workflows are
// generated in the fixed order minimal, performance, cost, so a stable
// left-to-right scan already prefers minimal on a tie.
func recommend(workflows []models.Workflow) string {
	best := workflows[0]
	bestScore := best.ComplexityScore + best.RiskScore
	for _, w := range workflows[1:] {
		score := w.ComplexityScore + w.RiskScore
		if score < bestScore {
			best = w
			bestScore = score
		}
	}
	return best.Name
}
