package models

// NodeType classifies a graph node by what it represents.
type NodeType string

const (
	NodeTypeService  NodeType = "service"
	NodeTypeDatabase NodeType = "database"
	NodeTypeExternal NodeType = "external"
)

// NodeMetrics are the aggregated call statistics attached to a node.
type NodeMetrics struct {
	CallCount    int     `json:"call_count"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	ErrorRate    float64 `json:"error_rate"`
}

// Node is a vertex in the reconstructed dependency graph. Its identity is
// the service name (for server spans) or the downstream identifier
// (for everything else); it is derived, never stored.
type Node struct {
	ID      string      `json:"id"`
	Type    NodeType    `json:"type"`
	Metrics NodeMetrics `json:"metrics"`
}
