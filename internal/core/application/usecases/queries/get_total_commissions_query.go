package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrGetTotalCommissionsQueryIsNotConstructed = errors.New(
	"GetTotalCommissionsQuery must be created via NewGetTotalCommissionsQuery constructor",
)

// GetTotalCommissionsQuery aggregates a courier's earnings over a date
// window: number of completed deliveries and the commission total.
type GetTotalCommissionsQuery struct {
	courierID kernel.UUID
	from      time.Time
	to        time.Time

	guard guard.ConstructorGuard
}

// NewGetTotalCommissionsQuery creates an aggregated commissions query.
func NewGetTotalCommissionsQuery(courierID kernel.UUID, from, to time.Time) (GetTotalCommissionsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetTotalCommissionsQuery{}, err
	}
	if from.IsZero() || to.IsZero() {
		return GetTotalCommissionsQuery{}, errs.NewValueIsRequiredError("date window")
	}
	if to.Before(from) {
		return GetTotalCommissionsQuery{}, errs.NewValueIsInvalidError("date window")
	}

	return GetTotalCommissionsQuery{
		courierID: courierID,
		from:      from,
		to:        endOfDay(to),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTotalCommissionsQuery) Validate() error {
	return q.guard.Validate(ErrGetTotalCommissionsQueryIsNotConstructed)
}

// CourierID returns the courier whose earnings are requested.
func (q GetTotalCommissionsQuery) CourierID() kernel.UUID { return q.courierID }

// From returns the inclusive window start.
func (q GetTotalCommissionsQuery) From() time.Time { return q.from }

// To returns the inclusive window end, normalized to the end of its day.
func (q GetTotalCommissionsQuery) To() time.Time { return q.to }

// GetTotalCommissionsQueryResponse is the earnings summary for the window.
type GetTotalCommissionsQueryResponse struct {
	Deliveries      int
	TotalBasePrice  kernel.Money
	TotalCommission kernel.Money
	Rate            string
}
