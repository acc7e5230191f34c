package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/pkg/errs"
)

// TrackGuideQueryHandler serves the public tracking endpoint with direct SQL
// reads. The guide and its history are fetched in two queries; history is
// returned oldest first.
type TrackGuideQueryHandler struct {
	db *gorm.DB
}

// NewTrackGuideQueryHandler creates a handler for public guide tracking.
func NewTrackGuideQueryHandler(db *gorm.DB) TrackGuideQueryHandler {
	return TrackGuideQueryHandler{db: db}
}

// Handle executes the tracking query.
func (h TrackGuideQueryHandler) Handle(
	ctx context.Context,
	query TrackGuideQuery,
) (TrackGuideQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackGuideQueryResponse{}, err
	}

	var (
		guideID       string
		state         int
		recipientName string
		city          string
		createdAt     time.Time
		deliveryDate  sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			state,
			recipient_name,
			recipient_city,
			created_at,
			delivery_date
		FROM guides
		WHERE number = ?
	`, query.Number().String()).Row()

	err := row.Scan(&guideID, &state, &recipientName, &city, &createdAt, &deliveryDate)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackGuideQueryResponse{}, errs.NewObjectNotFoundError("guideNumber", query.Number().String())
	}
	if err != nil {
		return TrackGuideQueryResponse{}, err
	}

	response := TrackGuideQueryResponse{
		Number:        query.Number().String(),
		Status:        guide.State(state).String(),
		RecipientName: recipientName,
		City:          city,
		CreatedAt:     createdAt,
	}
	if deliveryDate.Valid {
		delivered := deliveryDate.Time
		response.DeliveredAt = &delivered
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			state,
			observations,
			changed_at
		FROM guide_history
		WHERE guide_id = ?
		ORDER BY changed_at
	`, guideID).Rows()
	if err != nil {
		return TrackGuideQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			historyState int
			observations string
			changedAt    time.Time
		)
		if err = rows.Scan(&historyState, &observations, &changedAt); err != nil {
			return TrackGuideQueryResponse{}, err
		}
		response.History = append(response.History, TrackGuideHistoryItem{
			Status:       guide.State(historyState).String(),
			Observations: observations,
			ChangedAt:    changedAt,
		})
	}
	if err = rows.Err(); err != nil {
		return TrackGuideQueryResponse{}, err
	}

	return response, nil
}
