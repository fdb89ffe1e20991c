package graph

import (
	"context"
	"sort"

	"github.com/nexarch/core/internal/metrics"
	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/store"
)

// Build reads every span for tenant matching filters, partitions them by
// service_name (for node metrics) and by (service_name, downstream) (for
// edge metrics), and returns the resulting Graph. A span lacking
// downstream contributes only to its service's node metrics.
func Build(ctx context.Context, spanStore store.SpanStore, tenant string, filters store.Filters) (*Graph, error) {
	spans, err := spanStore.Query(ctx, tenant, filters)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return New(nil, nil), nil
	}

	nodeSpans := make(map[string][]models.Span)
	edgeSpans := make(map[[2]string][]models.Span)

	for _, span := range spans {
		nodeSpans[span.ServiceName] = append(nodeSpans[span.ServiceName], span)
		if span.Downstream != "" {
			if _, seen := nodeSpans[span.Downstream]; !seen {
				nodeSpans[span.Downstream] = nil
			}
			key := [2]string{span.ServiceName, span.Downstream}
			edgeSpans[key] = append(edgeSpans[key], span)
		}
	}

	nodeIDs := make([]string, 0, len(nodeSpans))
	for id := range nodeSpans {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	nodes := make([]models.Node, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		group := nodeSpans[id]
		nodeType := classify(ctx, spanStore, tenant, id)
		var nodeMetrics models.NodeMetrics
		if len(group) > 0 {
			nodeMetrics = metrics.Aggregate(group)
		}
		nodes = append(nodes, models.Node{ID: id, Type: nodeType, Metrics: nodeMetrics})
	}

	edgeKeys := make([][2]string, 0, len(edgeSpans))
	for key := range edgeSpans {
		edgeKeys = append(edgeKeys, key)
	}
	sort.Slice(edgeKeys, func(i, j int) bool {
		if edgeKeys[i][0] != edgeKeys[j][0] {
			return edgeKeys[i][0] < edgeKeys[j][0]
		}
		return edgeKeys[i][1] < edgeKeys[j][1]
	})

	edges := make([]models.Edge, 0, len(edgeKeys))
	for _, key := range edgeKeys {
		group := edgeSpans[key]
		agg := metrics.Aggregate(group)
		edges = append(edges, models.Edge{
			Source:       key[0],
			Target:       key[1],
			CallCount:    agg.CallCount,
			AvgLatencyMS: agg.AvgLatencyMS,
			ErrorRate:    agg.ErrorRate,
		})
	}

	return New(nodes, edges), nil
}
