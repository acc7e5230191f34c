package services

import (
	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// PenaltyRates holds the configurable cancellation penalty percentages, as
// fractions of the base price (e.g. 0.10 for 10%). Post-pickup cancellations
// incur the higher rate.
type PenaltyRates struct {
	PrePickup  decimal.Decimal
	PostPickup decimal.Decimal
}

// CommissionCalculator computes courier commissions per delivery and penalty
// amounts on cancellation.
//
// Business rules:
//   - commission = basePrice × rate, rounded half-up to 2 decimal places
//   - the rate comes from system configuration unless the courier's contract
//     carries an override
//   - cancellation penalty depends on whether the guide was picked up; a
//     remaining free-cancellation credit waives it entirely
//   - pre-pickup cancellations yield zero courier commission
type CommissionCalculator struct{}

// NewCommissionCalculator creates a new CommissionCalculator instance.
func NewCommissionCalculator() CommissionCalculator {
	return CommissionCalculator{}
}

// RateFor returns the effective commission rate for a courier: the contract
// override when present, otherwise the system-wide rate.
func (CommissionCalculator) RateFor(c *courier.Courier, systemRate decimal.Decimal) decimal.Decimal {
	if c != nil && c.CommissionRate() != nil {
		return *c.CommissionRate()
	}
	return systemRate
}

// Commission computes the courier commission for a delivered guide.
func (CommissionCalculator) Commission(basePrice kernel.Money, rate decimal.Decimal) (kernel.Money, error) {
	if rate.IsNegative() {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("rate", rate, 0, nil)
	}
	return basePrice.Mul(rate).Round(), nil
}

// CancellationCommission computes the commission owed to the courier when a
// guide is cancelled. It is zero unless the guide was already picked up.
func (cc CommissionCalculator) CancellationCommission(
	basePrice kernel.Money,
	pickedUp bool,
	rate decimal.Decimal,
) (kernel.Money, error) {
	if !pickedUp {
		return kernel.ZeroMoney(), nil
	}
	return cc.Commission(basePrice, rate)
}

// CancellationPenalty computes the penalty charged to the business on a
// coordinator-initiated cancellation. A remaining free-cancellation credit
// (Diamond-tier perk) waives the penalty; otherwise the state-dependent rate
// applies to the base price.
func (CommissionCalculator) CancellationPenalty(
	basePrice kernel.Money,
	pickedUp bool,
	freeCreditAvailable bool,
	rates PenaltyRates,
) (kernel.Money, error) {
	if freeCreditAvailable {
		return kernel.ZeroMoney(), nil
	}
	rate := rates.PrePickup
	if pickedUp {
		rate = rates.PostPickup
	}
	if rate.IsNegative() {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("penaltyRate", rate, 0, nil)
	}
	return basePrice.Mul(rate).Round(), nil
}
