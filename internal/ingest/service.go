package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/nexarch/core/internal/apperr"
	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/store"
	"github.com/nexarch/core/internal/telemetry"
)

// drainInterval bounds how long a span can sit in the queue before its
// worker flushes it to the store, even under light load.
const drainInterval = 50 * time.Millisecond

// Service is the Ingestion Front: it validates spans, absorbs bursts in
// a bounded per-tenant queue, and drains that queue into the durable
// Span Store without holding request threads on the durable write.
type Service struct {
	store      store.SpanStore
	queue      *Queue
	maxBytes   int
	maxBatch   int
	mu         sync.Mutex
	started    map[string]bool
	invalidate func(tenant string)
}

// NewService wires the Ingestion Front to a Span Store and its
// configured limits. invalidate, if non-nil, is called with the tenant
// once spans have been durably written, so the read-surface cache can
// drop its now-stale entries.
func NewService(st store.SpanStore, queueCapacity, maxSpanBytes, maxBatchSize int, invalidate func(tenant string)) *Service {
	return &Service{
		store:      st,
		queue:      NewQueue(queueCapacity),
		maxBytes:   maxSpanBytes,
		maxBatch:   maxBatchSize,
		started:    make(map[string]bool),
		invalidate: invalidate,
	}
}

// IngestSingle validates and enqueues one span, starting the tenant's
// drain worker on first use. It returns the accepted span's ID or a
// typed error: validation failures are KindValidation, a saturated
// queue is KindQuota.
func (svc *Service) IngestSingle(ctx context.Context, tenant string, span models.Span) (string, error) {
	if err := Validate(span, svc.maxBytes); err != nil {
		telemetry.RecordIngestRejected(tenant, "validation")
		return "", err
	}
	svc.ensureWorker(tenant)
	if !svc.queue.Offer(tenant, span) {
		telemetry.RecordIngestRejected(tenant, "queue_saturated")
		return "", apperr.New(apperr.KindQuota, "tenant ingest queue saturated, retry later")
	}
	telemetry.RecordIngestAccepted(tenant, 1)
	telemetry.SetQueueDepth(tenant, svc.queue.Depth(tenant))
	return span.SpanID, nil
}

// IngestBatch validates each span independently: a bad span is recorded
// as a per-index rejection rather than failing the whole call, per the
// batch ingest contract.
func (svc *Service) IngestBatch(ctx context.Context, tenant string, spans []models.Span) (accepted int, rejected []store.BatchRejection, err error) {
	if svc.maxBatch > 0 && len(spans) > svc.maxBatch {
		return 0, nil, apperr.New(apperr.KindValidation, "batch exceeds maximum size")
	}
	svc.ensureWorker(tenant)

	for i, span := range spans {
		if verr := Validate(span, svc.maxBytes); verr != nil {
			rejected = append(rejected, store.BatchRejection{Index: i, Reason: verr.Error()})
			telemetry.RecordIngestRejected(tenant, "validation")
			continue
		}
		if !svc.queue.Offer(tenant, span) {
			rejected = append(rejected, store.BatchRejection{Index: i, Reason: "tenant ingest queue saturated"})
			telemetry.RecordIngestRejected(tenant, "queue_saturated")
			continue
		}
		accepted++
	}
	telemetry.RecordIngestAccepted(tenant, accepted)
	telemetry.SetQueueDepth(tenant, svc.queue.Depth(tenant))
	return accepted, rejected, nil
}

// ensureWorker starts the tenant's drain goroutine exactly once. The
// worker persists queued spans to the Span Store in the background so
// Ingest* never blocks on the durable write.
func (svc *Service) ensureWorker(tenant string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.started[tenant] {
		return
	}
	svc.started[tenant] = true
	ch := svc.queue.channelFor(tenant)
	go svc.drain(tenant, ch)
}

// drain persists queued spans in small batches via PutBatch, coalescing
// whatever has accumulated since the last flush rather than round-
// tripping the store once per span.
func (svc *Service) drain(tenant string, ch chan models.Span) {
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	var batch []models.Span
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if _, _, err := svc.store.PutBatch(context.Background(), tenant, batch); err == nil && svc.invalidate != nil {
			svc.invalidate(tenant)
		}
		batch = batch[:0]
	}

	for {
		select {
		case span, ok := <-ch:
			if !ok {
				flush()
				return
			}
			batch = append(batch, span)
			if len(batch) >= 64 {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
