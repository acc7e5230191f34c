package commands

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrCalculateMonthlyDiscountCommandIsNotConstructed = errors.New(
	"CalculateMonthlyDiscountCommand must be created via NewCalculateMonthlyDiscountCommand constructor",
)

// CalculateMonthlyDiscountCommand represents a request to (re)compute a
// business's loyalty discount for one month. Recomputation is idempotent: the
// period row is replaced, never accumulated.
type CalculateMonthlyDiscountCommand struct { //nolint:recvcheck //using for validation
	businessID kernel.UUID
	year       int
	month      time.Month

	guard guard.ConstructorGuard
}

// NewCalculateMonthlyDiscountCommand creates a discount calculation command.
func NewCalculateMonthlyDiscountCommand(
	businessID kernel.UUID,
	year int,
	month time.Month,
) (CalculateMonthlyDiscountCommand, error) {
	cmd := CalculateMonthlyDiscountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := businessID.Validate(); err != nil {
		return CalculateMonthlyDiscountCommand{}, err
	}
	if year < 2000 {
		return CalculateMonthlyDiscountCommand{}, errs.NewValueIsOutOfRangeError("year", year, 2000, nil)
	}
	if month < time.January || month > time.December {
		return CalculateMonthlyDiscountCommand{}, errs.NewValueIsOutOfRangeError("month", int(month), 1, 12)
	}

	cmd.businessID = businessID
	cmd.year = year
	cmd.month = month
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CalculateMonthlyDiscountCommand) Validate() error {
	return c.guard.Validate(ErrCalculateMonthlyDiscountCommandIsNotConstructed)
}

// BusinessID returns the business to compute the discount for.
func (c CalculateMonthlyDiscountCommand) BusinessID() kernel.UUID { return c.businessID }

// Year returns the period year.
func (c CalculateMonthlyDiscountCommand) Year() int { return c.year }

// Month returns the period month.
func (c CalculateMonthlyDiscountCommand) Month() time.Month { return c.month }
