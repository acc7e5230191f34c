package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrTrackGuideQueryIsNotConstructed = errors.New(
	"TrackGuideQuery must be created via NewTrackGuideQuery constructor",
)

// TrackGuideQuery retrieves the public tracking view of a guide by its
// number. No authentication is required; the response carries no pricing and
// no courier identity.
//
// Example:
//
//	number, _ := kernel.GuideNumberFromString("202500000042")
//	query, _ := NewTrackGuideQuery(number)
//	handler := NewTrackGuideQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to track guide: %w", err)
//	}
//
//	fmt.Printf("Guide %s is %s\n", view.Number, view.Status)
type TrackGuideQuery struct {
	number kernel.GuideNumber

	guard guard.ConstructorGuard
}

// NewTrackGuideQuery creates a public tracking query.
func NewTrackGuideQuery(number kernel.GuideNumber) (TrackGuideQuery, error) {
	if err := number.Validate(); err != nil {
		return TrackGuideQuery{}, err
	}
	return TrackGuideQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackGuideQuery) Validate() error {
	return q.guard.Validate(ErrTrackGuideQueryIsNotConstructed)
}

// Number returns the tracked guide number.
func (q TrackGuideQuery) Number() kernel.GuideNumber { return q.number }

// TrackGuideHistoryItem is one public history row.
type TrackGuideHistoryItem struct {
	Status       string
	Observations string
	ChangedAt    time.Time
}

// TrackGuideQueryResponse is the public tracking view: current status,
// recipient city and the full state history.
type TrackGuideQueryResponse struct {
	Number        string
	Status        string
	RecipientName string
	City          string
	CreatedAt     time.Time
	DeliveredAt   *time.Time
	History       []TrackGuideHistoryItem
}
