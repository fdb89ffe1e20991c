package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/store"
	"github.com/nexarch/core/internal/store/memory"
)

func seedSpans(t *testing.T, st store.SpanStore, tenant string, spans []models.Span) {
	t.Helper()
	for _, s := range spans {
		_, err := st.Put(context.Background(), tenant, s)
		require.NoError(t, err)
	}
}

func TestBuild_NodesAndEdges(t *testing.T) {
	st := memory.New()
	now := time.Now()
	seedSpans(t, st, "tenant-a", []models.Span{
		{TraceID: "t1", SpanID: "s1", ServiceName: "checkout", Operation: "op", Kind: models.SpanKindServer, StartTime: now, EndTime: now, LatencyMS: 50, Downstream: "orders-db-postgres"},
		{TraceID: "t1", SpanID: "s2", ServiceName: "checkout", Operation: "op", Kind: models.SpanKindServer, StartTime: now, EndTime: now, LatencyMS: 150, Downstream: "orders-db-postgres"},
		{TraceID: "t1", SpanID: "s3", ServiceName: "checkout", Operation: "op", Kind: models.SpanKindClient, StartTime: now, EndTime: now, LatencyMS: 20, Downstream: "payments"},
	})

	g, err := Build(context.Background(), st, "tenant-a", store.Filters{})
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3) // checkout, orders-db-postgres, payments
	checkout, ok := g.Node("checkout")
	require.True(t, ok)
	assert.Equal(t, models.NodeTypeService, checkout.Type)
	assert.Equal(t, 3, checkout.Metrics.CallCount)

	db, ok := g.Node("orders-db-postgres")
	require.True(t, ok)
	assert.Equal(t, models.NodeTypeDatabase, db.Type)

	edge, ok := g.Edge("checkout", "orders-db-postgres")
	require.True(t, ok)
	assert.Equal(t, 2, edge.CallCount)
	assert.InDelta(t, 100.0, edge.AvgLatencyMS, 0.0001)
}

func TestBuild_TenantIsolation(t *testing.T) {
	st := memory.New()
	now := time.Now()
	seedSpans(t, st, "tenant-a", []models.Span{
		{TraceID: "t1", SpanID: "s1", ServiceName: "svc-a", Operation: "op", Kind: models.SpanKindServer, StartTime: now, EndTime: now},
	})
	seedSpans(t, st, "tenant-b", []models.Span{
		{TraceID: "t2", SpanID: "s2", ServiceName: "svc-b", Operation: "op", Kind: models.SpanKindServer, StartTime: now, EndTime: now},
	})

	g, err := Build(context.Background(), st, "tenant-a", store.Filters{})
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "svc-a", g.Nodes[0].ID)
}

func TestBuild_SelfLoopNotFiltered(t *testing.T) {
	st := memory.New()
	now := time.Now()
	seedSpans(t, st, "tenant-a", []models.Span{
		{TraceID: "t1", SpanID: "s1", ServiceName: "svc-a", Operation: "op", Kind: models.SpanKindInternal, StartTime: now, EndTime: now, Downstream: "svc-a"},
	})

	g, err := Build(context.Background(), st, "tenant-a", store.Filters{})
	require.NoError(t, err)
	_, ok := g.Edge("svc-a", "svc-a")
	assert.True(t, ok)
}

func TestBuild_EmptyStoreProducesEmptyGraph(t *testing.T) {
	st := memory.New()
	g, err := Build(context.Background(), st, "tenant-empty", store.Filters{})
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}
