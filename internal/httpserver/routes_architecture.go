package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexarch/core/internal/analysis"
	"github.com/nexarch/core/internal/apperr"
	"github.com/nexarch/core/internal/auth"
	"github.com/nexarch/core/internal/graph"
	"github.com/nexarch/core/internal/rules"
	"github.com/nexarch/core/internal/store"
	"github.com/nexarch/core/internal/telemetry"
)

func registerArchitectureRoutes(api *gin.RouterGroup, deps Deps) {
	api.GET("/architecture/current", func(c *gin.Context) { architectureCurrent(c, deps) })
	api.GET("/architecture/issues", func(c *gin.Context) { architectureIssues(c, deps) })
	api.GET("/architecture/analysis", func(c *gin.Context) { architectureAnalysis(c, deps) })
}

func buildGraph(c *gin.Context, deps Deps, tenant string) (*graph.Graph, bool) {
	g, err := graph.Build(c.Request.Context(), deps.Store, tenant, store.Filters{})
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindDependency, err))
		return nil, false
	}
	return g, true
}

func architectureCurrent(c *gin.Context, deps Deps) {
	start := time.Now()
	defer func() { telemetry.ObserveReadDuration("architecture_current", time.Since(start)) }()

	tenant := auth.TenantFromContext(c)

	var cached map[string]interface{}
	if deps.Cache != nil && deps.Cache.Get(c.Request.Context(), tenant, "architecture", &cached) {
		c.JSON(200, cached)
		return
	}

	g, ok := buildGraph(c, deps, tenant)
	if !ok {
		return
	}

	body := gin.H{
		"nodes": g.Nodes,
		"edges": g.Edges,
		"summary": gin.H{
			"node_count": len(g.Nodes),
			"edge_count": len(g.Edges),
		},
	}
	if deps.Cache != nil {
		_ = deps.Cache.Set(c.Request.Context(), tenant, "architecture", body)
	}
	c.JSON(200, body)
}

func architectureIssues(c *gin.Context, deps Deps) {
	start := time.Now()
	defer func() { telemetry.ObserveReadDuration("architecture_issues", time.Since(start)) }()

	tenant := auth.TenantFromContext(c)

	var cached gin.H
	if deps.Cache != nil && deps.Cache.Get(c.Request.Context(), tenant, "issues", &cached) {
		c.JSON(200, cached)
		return
	}

	g, ok := buildGraph(c, deps, tenant)
	if !ok {
		return
	}

	engine := rules.New(deps.Config.Thresholds, deps.Log)
	issues := engine.Detect(g)

	buckets := map[string]int{"low": 0, "medium": 0, "high": 0, "critical": 0}
	for _, issue := range issues {
		buckets[string(issue.Severity)]++
	}

	body := gin.H{"issues": issues, "severity_buckets": buckets}
	if deps.Cache != nil {
		_ = deps.Cache.Set(c.Request.Context(), tenant, "issues", body)
	}
	c.JSON(200, body)
}

func architectureAnalysis(c *gin.Context, deps Deps) {
	start := time.Now()
	defer func() { telemetry.ObserveReadDuration("graph_analysis", time.Since(start)) }()

	tenant := auth.TenantFromContext(c)

	var cached analysis.Summary
	if deps.Cache != nil && deps.Cache.Get(c.Request.Context(), tenant, "analysis", &cached) {
		c.JSON(200, cached)
		return
	}

	g, ok := buildGraph(c, deps, tenant)
	if !ok {
		return
	}

	summary := analysis.Analyze(g)
	if deps.Cache != nil {
		_ = deps.Cache.Set(c.Request.Context(), tenant, "analysis", summary)
	}
	c.JSON(200, summary)
}
