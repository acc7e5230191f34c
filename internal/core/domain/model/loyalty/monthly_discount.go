package loyalty

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrMonthlyDiscountIsNotConstructed is returned when using an improperly
// initialized MonthlyDiscount.
var ErrMonthlyDiscountIsNotConstructed = errors.New("MonthlyDiscount must be created via NewMonthlyDiscount constructor")

// MonthlyDiscount is the computed discount for one (business, year, month)
// period. It is recalculated idempotently: recomputing a period replaces the
// previous totals, never adds to them.
type MonthlyDiscount struct {
	id                  kernel.UUID
	businessID          kernel.UUID
	year                int
	month               time.Month
	totalDeliveries     int
	totalBeforeDiscount kernel.Money
	discountPercentage  decimal.Decimal
	discountAmount      kernel.Money
	totalAfterDiscount  kernel.Money
	appliedLevelID      *kernel.UUID
	calculatedAt        time.Time

	guard guard.ConstructorGuard
}

// NewMonthlyDiscount creates a MonthlyDiscount for a period.
func NewMonthlyDiscount(
	id kernel.UUID,
	businessID kernel.UUID,
	year int,
	month time.Month,
	totalDeliveries int,
	totalBeforeDiscount kernel.Money,
	discountPercentage decimal.Decimal,
	discountAmount kernel.Money,
	totalAfterDiscount kernel.Money,
	appliedLevelID *kernel.UUID,
	calculatedAt time.Time,
) (*MonthlyDiscount, error) {
	d := &MonthlyDiscount{guard: guard.NewConstructorGuard()}

	if err := errors.Join(id.Validate(), businessID.Validate()); err != nil {
		return nil, err
	}
	if year < 2000 {
		return nil, errs.NewValueIsOutOfRangeError("year", year, 2000, nil)
	}
	if month < time.January || month > time.December {
		return nil, errs.NewValueIsOutOfRangeError("month", int(month), 1, 12)
	}
	if totalDeliveries < 0 {
		return nil, errs.NewValueIsOutOfRangeError("totalDeliveries", totalDeliveries, 0, nil)
	}

	d.id = id
	d.businessID = businessID
	d.year = year
	d.month = month
	d.totalDeliveries = totalDeliveries
	d.totalBeforeDiscount = totalBeforeDiscount
	d.discountPercentage = discountPercentage
	d.discountAmount = discountAmount
	d.totalAfterDiscount = totalAfterDiscount
	d.appliedLevelID = appliedLevelID
	d.calculatedAt = calculatedAt
	return d, nil
}

// Validate ensures the MonthlyDiscount was created via a constructor.
func (d *MonthlyDiscount) Validate() error {
	if d == nil {
		return ErrMonthlyDiscountIsNotConstructed
	}
	return d.guard.Validate(ErrMonthlyDiscountIsNotConstructed)
}

// ID returns the row identifier.
func (d *MonthlyDiscount) ID() kernel.UUID { return d.id }

// BusinessID returns the business the discount belongs to.
func (d *MonthlyDiscount) BusinessID() kernel.UUID { return d.businessID }

// Year returns the period year.
func (d *MonthlyDiscount) Year() int { return d.year }

// Month returns the period month.
func (d *MonthlyDiscount) Month() time.Month { return d.month }

// TotalDeliveries returns the completed deliveries counted in the period.
func (d *MonthlyDiscount) TotalDeliveries() int { return d.totalDeliveries }

// TotalBeforeDiscount returns the billed total before the discount.
func (d *MonthlyDiscount) TotalBeforeDiscount() kernel.Money { return d.totalBeforeDiscount }

// DiscountPercentage returns the percentage applied.
func (d *MonthlyDiscount) DiscountPercentage() decimal.Decimal { return d.discountPercentage }

// DiscountAmount returns the discounted amount.
func (d *MonthlyDiscount) DiscountAmount() kernel.Money { return d.discountAmount }

// TotalAfterDiscount returns the billed total after the discount.
func (d *MonthlyDiscount) TotalAfterDiscount() kernel.Money { return d.totalAfterDiscount }

// AppliedLevelID returns the loyalty level in force at calculation time.
func (d *MonthlyDiscount) AppliedLevelID() *kernel.UUID { return d.appliedLevelID }

// CalculatedAt returns when the row was (re)computed.
func (d *MonthlyDiscount) CalculatedAt() time.Time { return d.calculatedAt }
