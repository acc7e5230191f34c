package guide

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// HistoryEntry is one row of a guide's append-only audit trail. Entries are
// written once per state change and never updated or deleted; the public
// tracking page renders them in order.
type HistoryEntry struct {
	id           kernel.UUID
	guideID      kernel.UUID
	state        State
	userID       *kernel.UUID
	observations string
	changedAt    time.Time
}

// NewHistoryEntry creates an audit row for a state change. userID is nil for
// system or public actions.
func NewHistoryEntry(
	guideID kernel.UUID,
	state State,
	userID *kernel.UUID,
	observations string,
	changedAt time.Time,
) (HistoryEntry, error) {
	if err := guideID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := state.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}
	if changedAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("changedAt")
	}

	return HistoryEntry{
		id:           kernel.NewUUID(),
		guideID:      guideID,
		state:        state,
		userID:       userID,
		observations: observations,
		changedAt:    changedAt,
	}, nil
}

// RestoreHistoryEntry reconstructs an entry from persistence.
func RestoreHistoryEntry(
	id, guideID kernel.UUID,
	state State,
	userID *kernel.UUID,
	observations string,
	changedAt time.Time,
) (HistoryEntry, error) {
	if err := id.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	entry, err := NewHistoryEntry(guideID, state, userID, observations, changedAt)
	if err != nil {
		return HistoryEntry{}, err
	}
	entry.id = id
	return entry, nil
}

// ID returns the entry's unique identifier.
func (h HistoryEntry) ID() kernel.UUID { return h.id }

// GuideID returns the guide this entry belongs to.
func (h HistoryEntry) GuideID() kernel.UUID { return h.guideID }

// State returns the state reached by the recorded transition.
func (h HistoryEntry) State() State { return h.state }

// UserID returns the acting user, nil for system or public actions.
func (h HistoryEntry) UserID() *kernel.UUID { return h.userID }

// Observations returns the free-form note attached to the transition.
func (h HistoryEntry) Observations() string { return h.observations }

// ChangedAt returns when the transition happened.
func (h HistoryEntry) ChangedAt() time.Time { return h.changedAt }
