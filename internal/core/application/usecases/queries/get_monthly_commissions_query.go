package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrGetMonthlyCommissionsQueryIsNotConstructed = errors.New(
	"GetMonthlyCommissionsQuery must be created via NewGetMonthlyCommissionsQuery constructor",
)

// GetMonthlyCommissionsQuery retrieves a courier's earnings for one year,
// grouped by calendar month. Months without deliveries are omitted.
type GetMonthlyCommissionsQuery struct {
	courierID kernel.UUID
	year      int

	guard guard.ConstructorGuard
}

// NewGetMonthlyCommissionsQuery creates a per-month earnings query.
func NewGetMonthlyCommissionsQuery(courierID kernel.UUID, year int) (GetMonthlyCommissionsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetMonthlyCommissionsQuery{}, err
	}
	if year < 2000 {
		return GetMonthlyCommissionsQuery{}, errs.NewValueIsOutOfRangeError("year", year, 2000, nil)
	}

	return GetMonthlyCommissionsQuery{
		courierID: courierID,
		year:      year,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMonthlyCommissionsQuery) Validate() error {
	return q.guard.Validate(ErrGetMonthlyCommissionsQueryIsNotConstructed)
}

// CourierID returns the courier whose earnings are requested.
func (q GetMonthlyCommissionsQuery) CourierID() kernel.UUID { return q.courierID }

// Year returns the requested calendar year.
func (q GetMonthlyCommissionsQuery) Year() int { return q.year }

// GetMonthlyCommissionsQueryResponse is one month's earnings summary.
type GetMonthlyCommissionsQueryResponse struct {
	Month           time.Month
	Deliveries      int
	TotalCommission kernel.Money
}
