package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrRejectGuideCommandIsNotConstructed = errors.New(
	"RejectGuideCommand must be created via NewRejectGuideCommand constructor",
)

// RejectGuideCommand represents a customer rejecting a delivery through the
// public tracking endpoint. There is no authenticated user: the guide is
// addressed by its public number and the acting user recorded as nil.
type RejectGuideCommand struct { //nolint:recvcheck //using for validation
	guideNumber     kernel.GuideNumber
	rejectionReason string
	requiresReturn  bool

	guard guard.ConstructorGuard
}

// NewRejectGuideCommand creates a public rejection command.
func NewRejectGuideCommand(
	guideNumber kernel.GuideNumber,
	rejectionReason string,
	requiresReturn bool,
) (RejectGuideCommand, error) {
	cmd := RejectGuideCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := guideNumber.Validate(); err != nil {
		return RejectGuideCommand{}, err
	}
	if rejectionReason == "" {
		return RejectGuideCommand{}, errs.NewValueIsRequiredError("rejectionReason")
	}

	cmd.guideNumber = guideNumber
	cmd.rejectionReason = rejectionReason
	cmd.requiresReturn = requiresReturn
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectGuideCommand) Validate() error {
	return c.guard.Validate(ErrRejectGuideCommandIsNotConstructed)
}

// GuideNumber returns the public number of the rejected guide.
func (c RejectGuideCommand) GuideNumber() kernel.GuideNumber { return c.guideNumber }

// RejectionReason returns the customer's stated reason.
func (c RejectGuideCommand) RejectionReason() string { return c.rejectionReason }

// RequiresReturn reports whether the customer asked for a return to sender.
func (c RejectGuideCommand) RequiresReturn() bool { return c.requiresReturn }
