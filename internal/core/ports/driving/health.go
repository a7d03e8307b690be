package driving

import (
	"context"

	"github.com/custodia-labs/docsearch/internal/core/domain"
)

// HealthService reports whether collaborators are reachable.
type HealthService interface {
	Check(ctx context.Context) domain.HealthStatus
}
