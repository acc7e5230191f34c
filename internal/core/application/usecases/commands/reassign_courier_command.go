package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrReassignCourierCommandIsNotConstructed = errors.New(
	"ReassignCourierCommand must be created via NewReassignCourierCommand constructor",
)

// ReassignCourierCommand represents a coordinator's request to move an active
// guide to a different courier. A reason is mandatory for the audit trail.
type ReassignCourierCommand struct { //nolint:recvcheck //using for validation
	guideID       kernel.UUID
	newCourierID  kernel.UUID
	reason        string
	coordinatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignCourierCommand creates a command to reassign a guide.
func NewReassignCourierCommand(
	guideID, newCourierID kernel.UUID,
	reason string,
	coordinatorID kernel.UUID,
) (ReassignCourierCommand, error) {
	cmd := ReassignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		guideID.Validate(),
		newCourierID.Validate(),
		coordinatorID.Validate(),
	); err != nil {
		return ReassignCourierCommand{}, err
	}
	if reason == "" {
		return ReassignCourierCommand{}, errs.NewValueIsRequiredError("reason")
	}

	cmd.guideID = guideID
	cmd.newCourierID = newCourierID
	cmd.reason = reason
	cmd.coordinatorID = coordinatorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignCourierCommand) Validate() error {
	return c.guard.Validate(ErrReassignCourierCommandIsNotConstructed)
}

// GuideID returns the guide to reassign.
func (c ReassignCourierCommand) GuideID() kernel.UUID { return c.guideID }

// NewCourierID returns the courier taking over the delivery.
func (c ReassignCourierCommand) NewCourierID() kernel.UUID { return c.newCourierID }

// Reason returns the audit reason for the reassignment.
func (c ReassignCourierCommand) Reason() string { return c.reason }

// CoordinatorID returns the acting coordinator.
func (c ReassignCourierCommand) CoordinatorID() kernel.UUID { return c.coordinatorID }
