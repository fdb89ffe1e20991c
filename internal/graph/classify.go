package graph

import (
	"context"
	"strings"

	"github.com/nexarch/core/internal/models"
	"github.com/nexarch/core/internal/store"
)

var databaseMarkers = []string{"postgres", "mysql", "mongo", "redis", "dynamodb", "cosmosdb"}
var externalMarkers = []string{"http://", "https://", "api."}

// classify infers a node's type from its identity string. A discovery
// record's declared type, when present, overrides the heuristic — the
// service discovery table exists precisely so a self-described service
// isn't misclassified by a name pattern.
func classify(ctx context.Context, discovery store.SpanStore, tenant, nodeID string) models.NodeType {
	if rec, ok, err := discovery.GetDiscoveryRecord(ctx, tenant, nodeID); err == nil && ok && rec.DeclaredType != "" {
		return rec.DeclaredType
	}

	lower := strings.ToLower(nodeID)
	for _, marker := range databaseMarkers {
		if strings.Contains(lower, marker) {
			return models.NodeTypeDatabase
		}
	}
	for _, marker := range externalMarkers {
		if strings.Contains(lower, marker) {
			return models.NodeTypeExternal
		}
	}
	return models.NodeTypeService
}
