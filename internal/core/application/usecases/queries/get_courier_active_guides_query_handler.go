package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// GetCourierActiveGuidesQueryHandler lists a courier's open guides, urgent
// first. Terminal states are excluded; an interrupted guide (Incidencia)
// still belongs to the route.
type GetCourierActiveGuidesQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierActiveGuidesQueryHandler creates a handler for courier
// workload queries.
func NewGetCourierActiveGuidesQueryHandler(db *gorm.DB) GetCourierActiveGuidesQueryHandler {
	return GetCourierActiveGuidesQueryHandler{db: db}
}

// Handle executes the workload query.
func (h GetCourierActiveGuidesQueryHandler) Handle(
	ctx context.Context,
	query GetCourierActiveGuidesQuery,
) ([]GetCourierActiveGuidesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := make([]GetCourierActiveGuidesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			state,
			recipient_name,
			recipient_address,
			recipient_city,
			priority,
			assignment_date
		FROM guides
		WHERE courier_id = ? AND state NOT IN (?, ?, ?)
		ORDER BY priority DESC, assignment_date
	`, query.CourierID().Bytes(),
		int(guide.Entregada), int(guide.Cancelada), int(guide.Rechazada)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp           GetCourierActiveGuidesQueryResponse
			id             uuid.UUID
			state          int
			assignmentDate sql.NullTime
		)

		err = rows.Scan(
			&id, &resp.Number, &state, &resp.RecipientName,
			&resp.RecipientAddress, &resp.City, &resp.Priority, &assignmentDate,
		)
		if err != nil {
			return nil, err
		}

		guideID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = guideID
		resp.Status = guide.State(state).String()
		if assignmentDate.Valid {
			assigned := assignmentDate.Time
			resp.AssignmentDate = &assigned
		}
		active = append(active, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return active, nil
}
