// Package business provides the Business aggregate: the customer companies
// that create guides, earn loyalty benefits from delivery volume and consume
// free-cancellation credits.
package business

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrBusinessIsNotConstructed is returned when using an improperly initialized
// Business.
var ErrBusinessIsNotConstructed = errors.New("Business must be created via NewBusiness constructor")

// Business is a company shipping through the platform.
//
// The loyalty level is derived from delivery history, never stored
// authoritatively; currentLevelHint is only a denormalized cache refreshed
// when benefits are recomputed. freeCancellationsUsed counts the
// free-cancellation credits consumed against the level's quota.
type Business struct {
	id    kernel.UUID
	name  string
	email string

	currentLevelHint      *kernel.UUID
	freeCancellationsUsed int

	guard guard.ConstructorGuard
}

// NewBusiness creates a Business.
func NewBusiness(id kernel.UUID, name, email string) (*Business, error) {
	b := &Business{guard: guard.NewConstructorGuard()}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	b.id = id
	b.name = name
	b.email = email
	return b, nil
}

// RestoreBusiness reconstructs a Business from persistence.
func RestoreBusiness(
	id kernel.UUID,
	name, email string,
	currentLevelHint *kernel.UUID,
	freeCancellationsUsed int,
) (*Business, error) {
	b, err := NewBusiness(id, name, email)
	if err != nil {
		return nil, err
	}
	b.currentLevelHint = currentLevelHint
	b.freeCancellationsUsed = freeCancellationsUsed
	return b, nil
}

// Validate ensures the Business was created via a constructor.
func (b *Business) Validate() error {
	if b == nil {
		return ErrBusinessIsNotConstructed
	}
	return b.guard.Validate(ErrBusinessIsNotConstructed)
}

// ID returns the business identifier.
func (b *Business) ID() kernel.UUID { return b.id }

// Name returns the business name.
func (b *Business) Name() string { return b.name }

// Email returns the notification address.
func (b *Business) Email() string { return b.email }

// CurrentLevelHint returns the cached loyalty level pointer, nil if never
// computed. Authoritative level always comes from the loyalty engine.
func (b *Business) CurrentLevelHint() *kernel.UUID { return b.currentLevelHint }

// FreeCancellationsUsed returns how many free-cancellation credits were
// consumed.
func (b *Business) FreeCancellationsUsed() int { return b.freeCancellationsUsed }

// CacheLevel refreshes the denormalized level hint.
func (b *Business) CacheLevel(levelID kernel.UUID) error {
	if err := levelID.Validate(); err != nil {
		return err
	}
	b.currentLevelHint = &levelID
	return nil
}

// HasFreeCancellationCredit reports whether a credit remains against the
// given quota.
func (b *Business) HasFreeCancellationCredit(quota int) bool {
	return quota > 0 && b.freeCancellationsUsed < quota
}

// ConsumeFreeCancellation decrements one free-cancellation credit against the
// given quota. Fails when the quota is exhausted.
func (b *Business) ConsumeFreeCancellation(quota int) error {
	if !b.HasFreeCancellationCredit(quota) {
		return errs.NewBusinessConstraintViolationError("free cancellations exhausted")
	}
	b.freeCancellationsUsed++
	return nil
}
