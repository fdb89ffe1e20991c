package models

import "time"

// DiscoveryRecord is a service's optional self-description, keyed by
// (tenant_id, service_name). When present, the Graph Builder's node
// classifier consults DeclaredType before falling back to the
// string-heuristic classifier.
type DiscoveryRecord struct {
	TenantID     string    `json:"tenant_id"`
	ServiceName  string    `json:"service_name"`
	Description  string    `json:"description"`
	DeclaredType NodeType  `json:"declared_type,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
