package guide

import (
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// CancellationKind categorizes who drives a cancellation.
type CancellationKind int

const (
	// CancellationByBusiness is a business-requested cancellation executed by
	// a coordinator. Penalties may apply.
	CancellationByBusiness CancellationKind = iota + 1

	// CancellationByCustomer is the public rejection path. Never penalized.
	CancellationByCustomer

	// CancellationByCourier covers operational cancellations escalated from a
	// courier incident.
	CancellationByCourier
)

func getCancellationKindStrings() map[CancellationKind]string {
	return map[CancellationKind]string{
		CancellationByBusiness: "Comercio",
		CancellationByCustomer: "Cliente",
		CancellationByCourier:  "Mensajero",
	}
}

// ParseCancellationKind resolves a kind from its catalog name.
func ParseCancellationKind(name string) (CancellationKind, error) {
	for kind, str := range getCancellationKindStrings() {
		if str == name {
			return kind, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"cancellationKind",
		fmt.Errorf("%q is not a known cancellation kind", name),
	)
}

// String returns the catalog name of the kind.
func (k CancellationKind) String() string {
	if str, ok := getCancellationKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the kind is one of the catalog values.
func (k CancellationKind) Validate() error {
	if _, ok := getCancellationKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"cancellationKind",
			fmt.Errorf("%d is not a valid cancellation kind", k),
		)
	}
	return nil
}

// Cancellation records why and how a guide was cancelled or rejected. Exactly
// one row exists per cancelled/rejected guide. cancelledBy is nil for the
// public rejection path.
//
// penaltyAmount and courierCommission are computed by the cancellation engine:
// both are always 0.00 for customer rejections, and courierCommission is 0.00
// whenever the package was never picked up.
type Cancellation struct {
	id                kernel.UUID
	guideID           kernel.UUID
	kind              CancellationKind
	cancelledBy       *kernel.UUID
	reason            string
	penaltyAmount     kernel.Money
	courierCommission kernel.Money
	cancelledAt       time.Time

	isConstructed bool
}

// NewCancellation creates the cancellation record for a guide.
func NewCancellation(
	guideID kernel.UUID,
	kind CancellationKind,
	cancelledBy *kernel.UUID,
	reason string,
	penaltyAmount kernel.Money,
	courierCommission kernel.Money,
	cancelledAt time.Time,
) (*Cancellation, error) {
	if err := guideID.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if cancelledBy != nil {
		if err := cancelledBy.Validate(); err != nil {
			return nil, err
		}
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("cancellation reason")
	}
	if cancelledAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("cancelledAt")
	}

	return &Cancellation{
		id:                kernel.NewUUID(),
		guideID:           guideID,
		kind:              kind,
		cancelledBy:       cancelledBy,
		reason:            reason,
		penaltyAmount:     penaltyAmount,
		courierCommission: courierCommission,
		cancelledAt:       cancelledAt,
		isConstructed:     true,
	}, nil
}

// RestoreCancellation reconstructs a cancellation from persistence.
func RestoreCancellation(
	id, guideID kernel.UUID,
	kind CancellationKind,
	cancelledBy *kernel.UUID,
	reason string,
	penaltyAmount, courierCommission kernel.Money,
	cancelledAt time.Time,
) (*Cancellation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	c, err := NewCancellation(guideID, kind, cancelledBy, reason, penaltyAmount, courierCommission, cancelledAt)
	if err != nil {
		return nil, err
	}
	c.id = id
	return c, nil
}

// Validate ensures the Cancellation was built through a constructor.
func (c *Cancellation) Validate() error {
	if c == nil || !c.isConstructed {
		return errs.NewValueIsRequiredError("Cancellation must be created via NewCancellation")
	}
	return nil
}

// ID returns the cancellation's identifier.
func (c *Cancellation) ID() kernel.UUID { return c.id }

// GuideID returns the cancelled guide.
func (c *Cancellation) GuideID() kernel.UUID { return c.guideID }

// Kind returns who drove the cancellation.
func (c *Cancellation) Kind() CancellationKind { return c.kind }

// CancelledBy returns the acting user, nil for public rejections.
func (c *Cancellation) CancelledBy() *kernel.UUID { return c.cancelledBy }

// Reason returns the stated reason.
func (c *Cancellation) Reason() string { return c.reason }

// PenaltyAmount returns the penalty charged to the business.
func (c *Cancellation) PenaltyAmount() kernel.Money { return c.penaltyAmount }

// CourierCommission returns the commission owed to the courier for work
// already done, zero if the package was never picked up.
func (c *Cancellation) CourierCommission() kernel.Money { return c.courierCommission }

// CancelledAt returns when the cancellation happened.
func (c *Cancellation) CancelledAt() time.Time { return c.cancelledAt }
