package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/store"
)

func span(id string, at time.Time) models.Span {
	return models.Span{
		TraceID:     "t",
		SpanID:      id,
		ServiceName: "svc",
		Operation:   "op",
		Kind:        models.SpanKindServer,
		StartTime:   at,
		EndTime:     at,
	}
}

func TestPut_IdempotentOnSpanID(t *testing.T) {
	st := New()
	ctx := context.Background()
	now := time.Now()

	first, err := st.Put(ctx, "tenant-a", span("s1", now))
	require.NoError(t, err)
	assert.Equal(t, store.PutOK, first)

	second, err := st.Put(ctx, "tenant-a", span("s1", now))
	require.NoError(t, err)
	assert.Equal(t, store.PutDuplicate, second)

	spans, err := st.Query(ctx, "tenant-a", store.Filters{})
	require.NoError(t, err)
	assert.Len(t, spans, 1)
}

func TestQuery_OrdersByStartTime(t *testing.T) {
	st := New()
	ctx := context.Background()
	base := time.Now()

	_, _ = st.Put(ctx, "tenant-a", span("s2", base.Add(2*time.Second)))
	_, _ = st.Put(ctx, "tenant-a", span("s1", base))
	_, _ = st.Put(ctx, "tenant-a", span("s3", base.Add(3*time.Second)))

	spans, err := st.Query(ctx, "tenant-a", store.Filters{})
	require.NoError(t, err)
	require.Len(t, spans, 3)
	assert.Equal(t, "s1", spans[0].SpanID)
	assert.Equal(t, "s2", spans[1].SpanID)
	assert.Equal(t, "s3", spans[2].SpanID)
}

func TestQuery_TenantIsolation(t *testing.T) {
	st := New()
	ctx := context.Background()
	now := time.Now()

	_, _ = st.Put(ctx, "tenant-a", span("s1", now))
	_, _ = st.Put(ctx, "tenant-b", span("s2", now))

	spans, err := st.Query(ctx, "tenant-a", store.Filters{})
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "s1", spans[0].SpanID)
}

func TestDiscoveryRecord_RoundTrip(t *testing.T) {
	st := New()
	ctx := context.Background()

	_, ok, err := st.GetDiscoveryRecord(ctx, "tenant-a", "checkout")
	require.NoError(t, err)
	assert.False(t, ok)

	rec := models.DiscoveryRecord{TenantID: "tenant-a", ServiceName: "checkout", DeclaredType: models.NodeTypeService}
	require.NoError(t, st.PutDiscoveryRecord(ctx, rec))

	got, ok, err := st.GetDiscoveryRecord(ctx, "tenant-a", "checkout")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.NodeTypeService, got.DeclaredType)
}

func TestPutBatch_DuplicateCountsAsAccepted(t *testing.T) {
	st := New()
	ctx := context.Background()
	now := time.Now()

	accepted, rejected, err := st.PutBatch(ctx, "tenant-a", []models.Span{
		span("s1", now),
		span("s1", now), // duplicate within the same batch
	})
	require.NoError(t, err)
	assert.Equal(t, 2, accepted) // a duplicate is "ok", so it counts as accepted
	assert.Empty(t, rejected)    // and is never a rejection
}
