package ports

import (
	"context"

	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for couriers.
type CourierRepository interface {
	// Add persists a new courier.
	Add(ctx context.Context, c *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, c *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllActive retrieves couriers whose contract covers the current date.
	// Only active couriers are eligible for assignment.
	GetAllActive(ctx context.Context) ([]*courier.Courier, error)
}
