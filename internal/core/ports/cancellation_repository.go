package ports

import (
	"context"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// CancellationRepository defines the persistence contract for the single
// Cancellation row a cancelled or rejected guide produces.
type CancellationRepository interface {
	// Add persists a cancellation record. A guide has at most one.
	Add(ctx context.Context, c *guide.Cancellation) error

	// GetByGuide retrieves the cancellation record for a guide.
	GetByGuide(ctx context.Context, guideID kernel.UUID) (*guide.Cancellation, error)
}
