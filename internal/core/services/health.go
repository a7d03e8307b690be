package services

import (
	"context"
	"time"

	"github.com/custodia-labs/docsearch/internal/core/domain"
	"github.com/custodia-labs/docsearch/internal/core/ports/driven"
	"github.com/custodia-labs/docsearch/internal/core/ports/driving"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// healthTimeout bounds a single health probe.
const healthTimeout = 5 * time.Second

// HealthService probes the vector store.
type HealthService struct {
	vectors driven.VectorStore
}

// NewHealthService creates a new health service.
func NewHealthService(vectors driven.VectorStore) *HealthService {
	return &HealthService{vectors: vectors}
}

// Check reports healthy when the vector store answers a ping.
func (s *HealthService) Check(ctx context.Context) domain.HealthStatus {
	if s.vectors == nil {
		return domain.HealthStatus{
			Status: domain.HealthUnhealthy,
			Error:  domain.ErrVectorStoreUnavailable.Error(),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := s.vectors.Ping(ctx); err != nil {
		return domain.HealthStatus{
			Status: domain.HealthUnhealthy,
			Error:  err.Error(),
		}
	}

	return domain.HealthStatus{
		Status:                domain.HealthHealthy,
		VectorStoreConnection: "ok",
	}
}
