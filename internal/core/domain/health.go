package domain

// Health states.
const (
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// HealthStatus reports whether the service can reach its collaborators.
type HealthStatus struct {
	Status                string `json:"status"`
	VectorStoreConnection string `json:"vector_store_connection,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Healthy returns true if every collaborator responded.
func (h HealthStatus) Healthy() bool {
	return h.Status == HealthHealthy
}
