// Package postgres implements store.SpanStore backed by PostgreSQL,
// following the storage-interface/postgres-impl split used elsewhere in
// the platform. It is the production Span Store.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	_ "github.com/lib/pq"

	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/store"
)

// Store implements store.SpanStore backed by *sql.DB.
type Store struct {
	db *sql.DB
}

var _ store.SpanStore = (*Store)(nil)

// New wraps an already-opened database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Put(ctx context.Context, tenant string, span models.Span) (store.PutResult, error) {
	metadata, err := json.Marshal(map[string]interface{}{})
	if err != nil {
		return store.PutRejected, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO spans (
			tenant_id, trace_id, span_id, parent_span_id, service_name, operation,
			kind, start_time, end_time, latency_ms, status_code, error, downstream, metadata
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (tenant_id, span_id) DO NOTHING
	`,
		tenant, span.TraceID, span.SpanID, nullString(span.ParentSpanID), span.ServiceName, span.Operation,
		string(span.Kind), span.StartTime, span.EndTime, span.LatencyMS, span.StatusCode, nullString(span.Error), nullString(span.Downstream), metadata,
	)
	if err != nil {
		return store.PutRejected, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return store.PutRejected, err
	}
	if rows == 0 {
		return store.PutDuplicate, nil
	}
	return store.PutOK, nil
}

func (s *Store) PutBatch(ctx context.Context, tenant string, spans []models.Span) (int, []store.BatchRejection, error) {
	accepted := 0
	var rejected []store.BatchRejection

	// Each insert runs on its own, outside a shared transaction: a failed
	// statement would abort a transaction and with it the whole batch.
	for i, span := range spans {
		metadata, merr := json.Marshal(map[string]interface{}{})
		if merr != nil {
			rejected = append(rejected, store.BatchRejection{Index: i, Reason: merr.Error()})
			continue
		}

		res, execErr := s.db.ExecContext(ctx, `
			INSERT INTO spans (
				tenant_id, trace_id, span_id, parent_span_id, service_name, operation,
				kind, start_time, end_time, latency_ms, status_code, error, downstream, metadata
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (tenant_id, span_id) DO NOTHING
		`,
			tenant, span.TraceID, span.SpanID, nullString(span.ParentSpanID), span.ServiceName, span.Operation,
			string(span.Kind), span.StartTime, span.EndTime, span.LatencyMS, span.StatusCode, nullString(span.Error), nullString(span.Downstream), metadata,
		)
		if execErr != nil {
			rejected = append(rejected, store.BatchRejection{Index: i, Reason: execErr.Error()})
			continue
		}
		accepted++
		_ = res
	}

	return accepted, rejected, nil
}

func (s *Store) Query(ctx context.Context, tenant string, filters store.Filters) ([]models.Span, error) {
	query := `
		SELECT trace_id, span_id, parent_span_id, service_name, operation, kind,
		       start_time, end_time, latency_ms, status_code, error, downstream
		FROM spans
		WHERE tenant_id = $1
	`
	args := []interface{}{tenant}

	if !filters.Start.IsZero() {
		args = append(args, filters.Start)
		query += " AND start_time >= $" + strconv.Itoa(len(args))
	}
	if !filters.End.IsZero() {
		args = append(args, filters.End)
		query += " AND start_time <= $" + strconv.Itoa(len(args))
	}
	if filters.ServiceName != "" {
		args = append(args, filters.ServiceName)
		query += " AND service_name = $" + strconv.Itoa(len(args))
	}
	if filters.TraceID != "" {
		args = append(args, filters.TraceID)
		query += " AND trace_id = $" + strconv.Itoa(len(args))
	}
	if filters.Downstream != "" {
		args = append(args, filters.Downstream)
		query += " AND downstream = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY start_time ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Span
	for rows.Next() {
		var (
			span         models.Span
			parentSpanID sql.NullString
			errStr       sql.NullString
			downstream   sql.NullString
			statusCode   sql.NullInt64
			kind         string
		)
		if err := rows.Scan(
			&span.TraceID, &span.SpanID, &parentSpanID, &span.ServiceName, &span.Operation, &kind,
			&span.StartTime, &span.EndTime, &span.LatencyMS, &statusCode, &errStr, &downstream,
		); err != nil {
			return nil, err
		}
		span.Kind = models.SpanKind(kind)
		span.ParentSpanID = parentSpanID.String
		span.Error = errStr.String
		span.Downstream = downstream.String
		if statusCode.Valid {
			code := int(statusCode.Int64)
			span.StatusCode = &code
		}
		result = append(result, span)
	}
	return result, rows.Err()
}

func (s *Store) PutDiscoveryRecord(ctx context.Context, rec models.DiscoveryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO service_discovery (tenant_id, service_name, description, declared_type, updated_at)
		VALUES ($1,$2,$3,$4,now())
		ON CONFLICT (tenant_id, service_name)
		DO UPDATE SET description = EXCLUDED.description, declared_type = EXCLUDED.declared_type, updated_at = now()
	`, rec.TenantID, rec.ServiceName, rec.Description, nullString(string(rec.DeclaredType)))
	return err
}

func (s *Store) GetDiscoveryRecord(ctx context.Context, tenant, serviceName string) (models.DiscoveryRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT description, declared_type, updated_at
		FROM service_discovery
		WHERE tenant_id = $1 AND service_name = $2
	`, tenant, serviceName)

	var (
		rec          models.DiscoveryRecord
		declaredType sql.NullString
	)
	rec.TenantID = tenant
	rec.ServiceName = serviceName

	if err := row.Scan(&rec.Description, &declaredType, &rec.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return models.DiscoveryRecord{}, false, nil
		}
		return models.DiscoveryRecord{}, false, err
	}
	rec.DeclaredType = models.NodeType(declaredType.String)
	return rec, true, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
