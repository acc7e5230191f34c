package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGetCourierActiveGuidesQueryIsNotConstructed = errors.New(
	"GetCourierActiveGuidesQuery must be created via NewGetCourierActiveGuidesQuery constructor",
)

// GetCourierActiveGuidesQuery retrieves the workload of one courier: every
// guide assigned to them that has not reached a terminal state.
type GetCourierActiveGuidesQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierActiveGuidesQuery creates a query for a courier's open guides.
func NewGetCourierActiveGuidesQuery(courierID kernel.UUID) (GetCourierActiveGuidesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierActiveGuidesQuery{}, err
	}
	return GetCourierActiveGuidesQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierActiveGuidesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierActiveGuidesQueryIsNotConstructed)
}

// CourierID returns the courier whose workload is requested.
func (q GetCourierActiveGuidesQuery) CourierID() kernel.UUID { return q.courierID }

// GetCourierActiveGuidesQueryResponse is one open guide on a courier's route.
type GetCourierActiveGuidesQueryResponse struct {
	ID               kernel.UUID
	Number           string
	Status           string
	RecipientName    string
	RecipientAddress string
	City             string
	Priority         int
	AssignmentDate   *time.Time
}
