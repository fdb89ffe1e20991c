// Package store defines the Span Store contract: a durable, tenant-scoped,
// idempotent-on-span_id record of raw spans, plus the supplementary
// service discovery table. Two implementations exist: postgres (production)
// and memory (tests, local dev without a database).
package store

import (
	"context"
	"time"

	"github.com/nexarch/core/internal/models"
)

// PutResult reports the outcome of a single-span insert.
type PutResult int

const (
	PutOK PutResult = iota
	PutDuplicate
	PutRejected
)

// BatchRejection names one span's index in a batch and why it was
// rejected.
type BatchRejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Filters scope a Query call. A zero value matches every span for the
// tenant.
type Filters struct {
	Start       time.Time
	End         time.Time
	ServiceName string
	TraceID     string
	Downstream  string
}

// SpanStore is the durable, indexed store of raw spans scoped per tenant.
// Every method must honor the tenant argument: no method may return or
// mutate data belonging to a different tenant.
type SpanStore interface {
	// Put inserts a single span. Duplicate span_id within the tenant is
	// treated as success without a second write.
	Put(ctx context.Context, tenant string, span models.Span) (PutResult, error)

	// PutBatch inserts spans independently; a bad span never fails the
	// whole batch.
	PutBatch(ctx context.Context, tenant string, spans []models.Span) (accepted int, rejected []BatchRejection, err error)

	// Query streams spans matching filters, ordered by start_time.
	Query(ctx context.Context, tenant string, filters Filters) ([]models.Span, error)

	// PutDiscoveryRecord upserts a service's optional self-description.
	PutDiscoveryRecord(ctx context.Context, rec models.DiscoveryRecord) error

	// GetDiscoveryRecord returns a tenant's declared record for a
	// service, or ok=false if none was registered.
	GetDiscoveryRecord(ctx context.Context, tenant, serviceName string) (rec models.DiscoveryRecord, ok bool, err error)
}
