package models

// Edge is a directed arc source -> target in the dependency graph, carrying
// the same three aggregated metrics as a Node. Identity is (source, target).
type Edge struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	CallCount    int     `json:"call_count"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	ErrorRate    float64 `json:"error_rate"`
}
