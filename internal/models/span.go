// Package models defines the wire and domain types shared across the
// ingestion, graph, rule, and reasoning layers.
package models

import "time"

// SpanKind enumerates the observed roles a span can play in a trace.
type SpanKind string

const (
	SpanKindServer   SpanKind = "server"
	SpanKindClient   SpanKind = "client"
	SpanKindInternal SpanKind = "internal"
)

// Span is the atomic telemetry record ingested from an instrumented
// application. It is append-only: once accepted, a span is never mutated.
type Span struct {
	TraceID       string    `json:"trace_id" validate:"required,max=64"`
	SpanID        string    `json:"span_id" validate:"required,max=64"`
	ParentSpanID  string    `json:"parent_span_id,omitempty" validate:"max=64"`
	ServiceName   string    `json:"service_name" validate:"required,max=255"`
	Operation     string    `json:"operation" validate:"required,max=255"`
	Kind          SpanKind  `json:"kind" validate:"required,oneof=server client internal"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" validate:"required"`
	LatencyMS     float64   `json:"latency_ms" validate:"gte=0"`
	StatusCode    *int      `json:"status_code,omitempty"`
	Error         string    `json:"error,omitempty"`
	Downstream    string    `json:"downstream,omitempty" validate:"max=255"`
}

// IsError reports whether the span should count toward a group's error
// rate: an explicit error string, or a 5xx status code. The 4xx range is
// deliberately excluded — client errors aren't the callee's fault.
func (s Span) IsError() bool {
	if s.Error != "" {
		return true
	}
	return s.StatusCode != nil && *s.StatusCode >= 500
}
