package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrGetCommissionHistoryQueryIsNotConstructed = errors.New(
	"GetCommissionHistoryQuery must be created via NewGetCommissionHistoryQuery constructor",
)

// GetCommissionHistoryQuery retrieves a courier's per-delivery commissions in
// a date window. The window is inclusive on both ends; the end date is
// extended to the last instant of its day so a same-day query covers the
// whole day.
type GetCommissionHistoryQuery struct {
	courierID kernel.UUID
	from      time.Time
	to        time.Time

	guard guard.ConstructorGuard
}

// NewGetCommissionHistoryQuery creates a commission history query.
func NewGetCommissionHistoryQuery(courierID kernel.UUID, from, to time.Time) (GetCommissionHistoryQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCommissionHistoryQuery{}, err
	}
	if from.IsZero() || to.IsZero() {
		return GetCommissionHistoryQuery{}, errs.NewValueIsRequiredError("date window")
	}
	if to.Before(from) {
		return GetCommissionHistoryQuery{}, errs.NewValueIsInvalidError("date window")
	}

	return GetCommissionHistoryQuery{
		courierID: courierID,
		from:      from,
		to:        endOfDay(to),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCommissionHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetCommissionHistoryQueryIsNotConstructed)
}

// CourierID returns the courier whose commissions are requested.
func (q GetCommissionHistoryQuery) CourierID() kernel.UUID { return q.courierID }

// From returns the inclusive window start.
func (q GetCommissionHistoryQuery) From() time.Time { return q.from }

// To returns the inclusive window end, normalized to the end of its day.
func (q GetCommissionHistoryQuery) To() time.Time { return q.to }

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// GetCommissionHistoryQueryResponse is one earned commission row.
type GetCommissionHistoryQueryResponse struct {
	GuideID     kernel.UUID
	Number      string
	DeliveredAt time.Time
	BasePrice   kernel.Money
	Rate        string
	Commission  kernel.Money
}
