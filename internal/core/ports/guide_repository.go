// Package ports defines repository and collaborator interfaces for the
// tracking domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// GuideRepository defines the persistence contract for tracking-guide
// aggregates. Every write also persists the history entries the aggregate
// accumulated, in the same transaction.
type GuideRepository interface {
	// Add persists a new guide aggregate together with its pending history.
	Add(ctx context.Context, aggregate *guide.Guide) error

	// Update persists changes to an existing guide together with its pending
	// history. The write is guarded by the guide's version: a stale version
	// fails with ErrConcurrentModification and persists nothing.
	Update(ctx context.Context, aggregate *guide.Guide) error

	// Get retrieves a guide aggregate by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*guide.Guide, error)

	// GetByNumber retrieves a guide by its external guide number. Used by the
	// public tracking and rejection endpoints.
	GetByNumber(ctx context.Context, number kernel.GuideNumber) (*guide.Guide, error)

	// GetHistory returns the full state history of a guide ordered by
	// changedAt ascending.
	GetHistory(ctx context.Context, guideID kernel.UUID) ([]guide.HistoryEntry, error)

	// NextSequence reserves the next guide-number sequence value for a year.
	NextSequence(ctx context.Context, year int) (int64, error)

	// CountDelivered counts guides delivered by a business within a window.
	// Levels and monthly discounts are derived from this count.
	CountDelivered(ctx context.Context, businessID kernel.UUID, from, to time.Time) (int, error)

	// SumDeliveredBasePrice sums the base price of guides delivered by a
	// business within a window. Input for the monthly discount.
	SumDeliveredBasePrice(ctx context.Context, businessID kernel.UUID, from, to time.Time) (kernel.Money, error)

	// AddIncident persists a reported incident.
	AddIncident(ctx context.Context, incident *guide.Incident) error

	// GetIncident retrieves an incident by identifier.
	GetIncident(ctx context.Context, id kernel.UUID) (*guide.Incident, error)

	// UpdateIncident persists incident resolution.
	UpdateIncident(ctx context.Context, incident *guide.Incident) error

	// AddEvidence persists a proof-of-delivery artifact.
	AddEvidence(ctx context.Context, evidence *guide.Evidence) error
}
