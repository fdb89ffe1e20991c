// Package ingest implements the Ingestion Front: validation, per-tenant
// burst-absorption queueing, and handoff to the Span Store.
package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nexarch/core/internal/apperr"
	"github.com/nexarch/core/internal/models"
)

var structValidator = validator.New()

// Validate checks a span against the struct tags in models.Span plus the
// cross-field rules the tags can't express: end before start, and a
// payload size cap measured on the span's JSON encoding.
func Validate(span models.Span, maxBytes int) error {
	if err := structValidator.Struct(span); err != nil {
		return apperr.New(apperr.KindValidation, err.Error())
	}
	if span.EndTime.Before(span.StartTime) {
		return apperr.New(apperr.KindValidation, "end_time before start_time")
	}
	if span.LatencyMS < 0 {
		return apperr.New(apperr.KindValidation, "latency_ms negative")
	}
	if maxBytes > 0 {
		encoded, err := json.Marshal(span)
		if err != nil {
			return apperr.New(apperr.KindValidation, "span not serializable")
		}
		if len(encoded) > maxBytes {
			return apperr.New(apperr.KindValidation, fmt.Sprintf("span exceeds max size of %d bytes", maxBytes))
		}
	}
	return nil
}
