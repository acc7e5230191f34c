// Package loyalty defines the configurable loyalty level catalog. Each level
// is a bracket over monthly completed deliveries granting a discount
// percentage and a free-cancellation quota.
package loyalty

import (
	"errors"

	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrLevelIsNotConstructed is returned when using an improperly initialized
// Level.
var ErrLevelIsNotConstructed = errors.New("Level must be created via NewLevel constructor")

// Level is one loyalty bracket. maxDeliveries nil means an open upper bound.
type Level struct {
	id                 kernel.UUID
	name               string
	minDeliveries      int
	maxDeliveries      *int
	discountPercentage decimal.Decimal
	freeCancellations  int

	guard guard.ConstructorGuard
}

// NewLevel creates a loyalty Level.
func NewLevel(
	id kernel.UUID,
	name string,
	minDeliveries int,
	maxDeliveries *int,
	discountPercentage decimal.Decimal,
	freeCancellations int,
) (*Level, error) {
	l := &Level{guard: guard.NewConstructorGuard()}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if minDeliveries < 0 {
		return nil, errs.NewValueIsOutOfRangeError("minDeliveries", minDeliveries, 0, nil)
	}
	if maxDeliveries != nil && *maxDeliveries < minDeliveries {
		return nil, errs.NewValueIsOutOfRangeError("maxDeliveries", *maxDeliveries, minDeliveries, nil)
	}
	if discountPercentage.IsNegative() || discountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errs.NewValueIsOutOfRangeError("discountPercentage", discountPercentage, 0, 100)
	}
	if freeCancellations < 0 {
		return nil, errs.NewValueIsOutOfRangeError("freeCancellations", freeCancellations, 0, nil)
	}

	l.id = id
	l.name = name
	l.minDeliveries = minDeliveries
	l.maxDeliveries = maxDeliveries
	l.discountPercentage = discountPercentage
	l.freeCancellations = freeCancellations
	return l, nil
}

// Validate ensures the Level was created via a constructor.
func (l *Level) Validate() error {
	if l == nil {
		return ErrLevelIsNotConstructed
	}
	return l.guard.Validate(ErrLevelIsNotConstructed)
}

// ID returns the level identifier.
func (l *Level) ID() kernel.UUID { return l.id }

// Name returns the level name.
func (l *Level) Name() string { return l.name }

// MinDeliveries returns the inclusive lower bound of the bracket.
func (l *Level) MinDeliveries() int { return l.minDeliveries }

// MaxDeliveries returns the inclusive upper bound, nil for an open bracket.
func (l *Level) MaxDeliveries() *int { return l.maxDeliveries }

// DiscountPercentage returns the discount granted on monthly totals.
func (l *Level) DiscountPercentage() decimal.Decimal { return l.discountPercentage }

// FreeCancellations returns the free-cancellation quota of the bracket.
func (l *Level) FreeCancellations() int { return l.freeCancellations }

// Contains reports whether a delivery count falls inside the bracket.
func (l *Level) Contains(deliveries int) bool {
	if deliveries < l.minDeliveries {
		return false
	}
	if l.maxDeliveries != nil && deliveries > *l.maxDeliveries {
		return false
	}
	return true
}
