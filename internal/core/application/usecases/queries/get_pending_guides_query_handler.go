package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// GetPendingGuidesQueryHandler lists the guides nobody is carrying yet.
// Urgent guides come first, then oldest first within the same priority.
type GetPendingGuidesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingGuidesQueryHandler creates a handler for the assignment board.
func NewGetPendingGuidesQueryHandler(db *gorm.DB) GetPendingGuidesQueryHandler {
	return GetPendingGuidesQueryHandler{db: db}
}

// Handle executes the query to retrieve all unassigned guides.
func (h GetPendingGuidesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingGuidesQuery,
) ([]GetPendingGuidesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingGuidesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			business_id,
			recipient_city,
			priority,
			created_at
		FROM guides
		WHERE state = ? AND courier_id IS NULL
		ORDER BY priority DESC, created_at
	`, int(guide.Creada)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp       GetPendingGuidesQueryResponse
			id         uuid.UUID
			businessID uuid.UUID
			createdAt  time.Time
		)

		if err = rows.Scan(&id, &resp.Number, &businessID, &resp.City, &resp.Priority, &createdAt); err != nil {
			return nil, err
		}

		guideID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(businessID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = guideID
		resp.BusinessID = ownerID
		resp.CreatedAt = createdAt
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
