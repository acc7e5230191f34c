package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGetPendingGuidesQueryIsNotConstructed = errors.New(
	"GetPendingGuidesQuery must be created via NewGetPendingGuidesQuery constructor",
)

// GetPendingGuidesQuery retrieves all guides waiting for a courier. Returns
// guides in Creada state for the coordinator's assignment board, highest
// priority first.
type GetPendingGuidesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingGuidesQuery creates a query to retrieve unassigned guides.
func NewGetPendingGuidesQuery() GetPendingGuidesQuery {
	return GetPendingGuidesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingGuidesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingGuidesQueryIsNotConstructed)
}

// GetPendingGuidesQueryResponse is one unassigned guide awaiting dispatch.
type GetPendingGuidesQueryResponse struct {
	ID         kernel.UUID
	Number     string
	BusinessID kernel.UUID
	City       string
	Priority   int
	CreatedAt  time.Time
}
