package ports

import (
	"context"

	"tracking/internal/core/domain/model/business"
	"tracking/internal/core/domain/model/kernel"
)

// BusinessRepository defines the persistence contract for businesses.
type BusinessRepository interface {
	// Add persists a new business.
	Add(ctx context.Context, b *business.Business) error

	// Update persists changes to an existing business, including consumed
	// free-cancellation credits and the cached level hint.
	Update(ctx context.Context, b *business.Business) error

	// Get retrieves a business by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*business.Business, error)

	// GetAll retrieves every business. Used by the monthly discount job.
	GetAll(ctx context.Context) ([]*business.Business, error)
}
