// Package metrics computes the call_count/avg_latency_ms/error_rate
// aggregates shared by node and edge metrics, from a group of spans.
package metrics

import "github.com/nexarch/core/internal/models"

// Aggregate reduces a non-empty group of spans to the three published
// statistics. The result is stable under any reordering of spans: it
// depends only on the multiset of latencies and error flags.
func Aggregate(spans []models.Span) models.NodeMetrics {
	n := len(spans)
	if n == 0 {
		return models.NodeMetrics{}
	}

	var latencySum float64
	var errorCount int
	for _, span := range spans {
		latencySum += span.LatencyMS
		if span.IsError() {
			errorCount++
		}
	}

	return models.NodeMetrics{
		CallCount:    n,
		AvgLatencyMS: latencySum / float64(n),
		ErrorRate:    float64(errorCount) / float64(n),
	}
}
