package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/loyalty"
)

// ErrNoQualifyingLevel is returned when no loyalty level bracket contains the
// given delivery count.
var ErrNoQualifyingLevel = errors.New("no qualifying loyalty level")

// LoyaltyEngine resolves a business's loyalty level from its delivery volume
// and computes the monthly discount the level grants.
//
// The level is always derived from completed (Entregada) deliveries in the
// period, never read from a stored field.
type LoyaltyEngine struct{}

// NewLoyaltyEngine creates a new LoyaltyEngine instance.
func NewLoyaltyEngine() LoyaltyEngine {
	return LoyaltyEngine{}
}

// ResolveLevel selects the level whose bracket contains the delivery count,
// preferring the highest qualifying tier (greatest minDeliveries).
func (LoyaltyEngine) ResolveLevel(levels []*loyalty.Level, deliveredCount int) (*loyalty.Level, error) {
	var best *loyalty.Level
	for _, l := range levels {
		if l == nil || !l.Contains(deliveredCount) {
			continue
		}
		if best == nil || l.MinDeliveries() > best.MinDeliveries() {
			best = l
		}
	}
	if best == nil {
		return nil, ErrNoQualifyingLevel
	}
	return best, nil
}

// MonthlyDiscount computes the discount amount and the resulting total for a
// period: discount = total × percentage / 100, rounded half-up to 2 places.
func (LoyaltyEngine) MonthlyDiscount(
	totalBeforeDiscount kernel.Money,
	discountPercentage decimal.Decimal,
) (discountAmount, totalAfterDiscount kernel.Money) {
	discountAmount = totalBeforeDiscount.
		Mul(discountPercentage.Div(decimal.NewFromInt(100))).
		Round()
	totalAfterDiscount = totalBeforeDiscount.Sub(discountAmount)
	return discountAmount, totalAfterDiscount
}
