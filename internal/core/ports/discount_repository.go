package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/loyalty"
)

// LoyaltyLevelRepository provides read access to the loyalty level catalog.
type LoyaltyLevelRepository interface {
	// GetAll retrieves the full level catalog.
	GetAll(ctx context.Context) ([]*loyalty.Level, error)

	// Get retrieves one level by identifier.
	Get(ctx context.Context, id kernel.UUID) (*loyalty.Level, error)
}

// DiscountRepository defines the persistence contract for monthly discounts.
type DiscountRepository interface {
	// Upsert stores the discount for a (business, year, month) period,
	// replacing any previous calculation for the same period.
	Upsert(ctx context.Context, d *loyalty.MonthlyDiscount) error

	// Get retrieves the discount computed for a period, if any.
	Get(ctx context.Context, businessID kernel.UUID, year int, month time.Month) (*loyalty.MonthlyDiscount, error)
}
