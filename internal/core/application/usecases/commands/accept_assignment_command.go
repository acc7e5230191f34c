package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand represents a courier confirming a guide assigned to
// them.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	guideID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a command for assignment acceptance.
func NewAcceptAssignmentCommand(guideID, courierID kernel.UUID) (AcceptAssignmentCommand, error) {
	cmd := AcceptAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(guideID.Validate(), courierID.Validate()); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	cmd.guideID = guideID
	cmd.courierID = courierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// GuideID returns the accepted guide.
func (c AcceptAssignmentCommand) GuideID() kernel.UUID { return c.guideID }

// CourierID returns the accepting courier.
func (c AcceptAssignmentCommand) CourierID() kernel.UUID { return c.courierID }
