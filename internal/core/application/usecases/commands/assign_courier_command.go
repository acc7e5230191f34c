package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a coordinator's request to assign a guide
// to a courier.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	guideID       kernel.UUID
	courierID     kernel.UUID
	coordinatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier to a guide.
func NewAssignCourierCommand(guideID, courierID, coordinatorID kernel.UUID) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		guideID.Validate(),
		courierID.Validate(),
		coordinatorID.Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	cmd.guideID = guideID
	cmd.courierID = courierID
	cmd.coordinatorID = coordinatorID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// GuideID returns the guide to assign.
func (c AssignCourierCommand) GuideID() kernel.UUID { return c.guideID }

// CourierID returns the courier receiving the assignment.
func (c AssignCourierCommand) CourierID() kernel.UUID { return c.courierID }

// CoordinatorID returns the acting coordinator.
func (c AssignCourierCommand) CoordinatorID() kernel.UUID { return c.coordinatorID }
