package domain

// ============================================================
// Health check
// ============================================================

// ServiceHealth reports one dependency's health.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"` // healthy, degraded, unhealthy
	LatencyMs   int64  `json:"latency_ms"`
	LastChecked string `json:"last_checked"`
}

// HealthStatus is the aggregate /healthz response.
type HealthStatus struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}
