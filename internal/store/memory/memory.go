// Package memory is an in-memory SpanStore implementation, safe for
// concurrent use. It backs unit tests and local/dev runs without a
// database, mirroring the storage-interface/postgres-impl/memory-impl
// split used for the platform's other stores.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/store"
)

// Store is an in-memory implementation of store.SpanStore.
type Store struct {
	mu         sync.RWMutex
	spansByID  map[string]map[string]models.Span // tenant -> span_id -> span
	discovery  map[string]map[string]models.DiscoveryRecord // tenant -> service -> record
}

var _ store.SpanStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		spansByID: make(map[string]map[string]models.Span),
		discovery: make(map[string]map[string]models.DiscoveryRecord),
	}
}

func (s *Store) Put(_ context.Context, tenant string, span models.Span) (store.PutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenantSpans, ok := s.spansByID[tenant]
	if !ok {
		tenantSpans = make(map[string]models.Span)
		s.spansByID[tenant] = tenantSpans
	}

	if _, exists := tenantSpans[span.SpanID]; exists {
		return store.PutDuplicate, nil
	}
	tenantSpans[span.SpanID] = span
	return store.PutOK, nil
}

func (s *Store) PutBatch(ctx context.Context, tenant string, spans []models.Span) (int, []store.BatchRejection, error) {
	accepted := 0
	var rejected []store.BatchRejection
	for i, span := range spans {
		result, err := s.Put(ctx, tenant, span)
		if err != nil {
			rejected = append(rejected, store.BatchRejection{Index: i, Reason: err.Error()})
			continue
		}
		if result == store.PutRejected {
			rejected = append(rejected, store.BatchRejection{Index: i, Reason: "rejected"})
			continue
		}
		accepted++
	}
	return accepted, rejected, nil
}

func (s *Store) Query(_ context.Context, tenant string, filters store.Filters) ([]models.Span, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantSpans := s.spansByID[tenant]
	result := make([]models.Span, 0, len(tenantSpans))
	for _, span := range tenantSpans {
		if !matches(span, filters) {
			continue
		}
		result = append(result, span)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func matches(span models.Span, f store.Filters) bool {
	if !f.Start.IsZero() && span.StartTime.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && span.StartTime.After(f.End) {
		return false
	}
	if f.ServiceName != "" && span.ServiceName != f.ServiceName {
		return false
	}
	if f.TraceID != "" && span.TraceID != f.TraceID {
		return false
	}
	if f.Downstream != "" && span.Downstream != f.Downstream {
		return false
	}
	return true
}

func (s *Store) PutDiscoveryRecord(_ context.Context, rec models.DiscoveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenantRecords, ok := s.discovery[rec.TenantID]
	if !ok {
		tenantRecords = make(map[string]models.DiscoveryRecord)
		s.discovery[rec.TenantID] = tenantRecords
	}
	tenantRecords[rec.ServiceName] = rec
	return nil
}

func (s *Store) GetDiscoveryRecord(_ context.Context, tenant, serviceName string) (models.DiscoveryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.discovery[tenant][serviceName]
	return rec, ok, nil
}
