package ingest

import (
	"sync"

	"github.com/nexarch/core/internal/models"
)

// Queue fans out bounded per-tenant channels absorbing ingest bursts.
// Overflow policy is drop-newest: Offer returns false rather than
// blocking the calling request thread.
type Queue struct {
	mu       sync.Mutex
	capacity int
	byTenant map[string]chan models.Span
}

// NewQueue builds a Queue whose per-tenant channels each hold up to
// capacity items.
func NewQueue(capacity int) *Queue {
	return &Queue{
		capacity: capacity,
		byTenant: make(map[string]chan models.Span),
	}
}

func (q *Queue) channelFor(tenant string) chan models.Span {
	q.mu.Lock()
	defer q.mu.Unlock()
	ch, ok := q.byTenant[tenant]
	if !ok {
		ch = make(chan models.Span, q.capacity)
		q.byTenant[tenant] = ch
	}
	return ch
}

// Offer attempts a non-blocking enqueue of span for tenant. It returns
// false if the tenant's queue is at capacity; the caller must shed the
// span with a retryable rejection rather than block.
func (q *Queue) Offer(tenant string, span models.Span) bool {
	ch := q.channelFor(tenant)
	select {
	case ch <- span:
		return true
	default:
		return false
	}
}

// Depth reports the current backlog for a tenant, for /metrics-style
// introspection.
func (q *Queue) Depth(tenant string) int {
	return len(q.channelFor(tenant))
}
