package commands

import (
	"errors"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrCancelGuideCommandIsNotConstructed = errors.New(
	"CancelGuideCommand must be created via NewCancelGuideCommand constructor",
)

// CancelGuideCommand represents a coordinator-initiated cancellation of a
// guide, either on behalf of the business or for an operational issue.
type CancelGuideCommand struct { //nolint:recvcheck //using for validation
	guideID       kernel.UUID
	kind          guide.CancellationKind
	reason        string
	coordinatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelGuideCommand creates a cancellation command.
func NewCancelGuideCommand(
	guideID kernel.UUID,
	kind guide.CancellationKind,
	reason string,
	coordinatorID kernel.UUID,
) (CancelGuideCommand, error) {
	cmd := CancelGuideCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		guideID.Validate(),
		kind.Validate(),
		coordinatorID.Validate(),
	); err != nil {
		return CancelGuideCommand{}, err
	}
	if reason == "" {
		return CancelGuideCommand{}, errs.NewValueIsRequiredError("reason")
	}

	cmd.guideID = guideID
	cmd.kind = kind
	cmd.reason = reason
	cmd.coordinatorID = coordinatorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelGuideCommand) Validate() error {
	return c.guard.Validate(ErrCancelGuideCommandIsNotConstructed)
}

// GuideID returns the guide to cancel.
func (c CancelGuideCommand) GuideID() kernel.UUID { return c.guideID }

// Kind returns who the cancellation is attributed to.
func (c CancelGuideCommand) Kind() guide.CancellationKind { return c.kind }

// Reason returns the cancellation reason.
func (c CancelGuideCommand) Reason() string { return c.reason }

// CoordinatorID returns the acting coordinator.
func (c CancelGuideCommand) CoordinatorID() kernel.UUID { return c.coordinatorID }
