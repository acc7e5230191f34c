package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrDeclineAssignmentCommandIsNotConstructed = errors.New(
	"DeclineAssignmentCommand must be created via NewDeclineAssignmentCommand constructor",
)

// DeclineAssignmentCommand represents a courier declining a guide assigned to
// them, returning it to the coordinator's pending pool.
type DeclineAssignmentCommand struct { //nolint:recvcheck //using for validation
	guideID   kernel.UUID
	courierID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewDeclineAssignmentCommand creates a command for assignment rejection.
func NewDeclineAssignmentCommand(guideID, courierID kernel.UUID, reason string) (DeclineAssignmentCommand, error) {
	cmd := DeclineAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(guideID.Validate(), courierID.Validate()); err != nil {
		return DeclineAssignmentCommand{}, err
	}
	if reason == "" {
		return DeclineAssignmentCommand{}, errs.NewValueIsRequiredError("reason")
	}

	cmd.guideID = guideID
	cmd.courierID = courierID
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrDeclineAssignmentCommandIsNotConstructed)
}

// GuideID returns the declined guide.
func (c DeclineAssignmentCommand) GuideID() kernel.UUID { return c.guideID }

// CourierID returns the declining courier.
func (c DeclineAssignmentCommand) CourierID() kernel.UUID { return c.courierID }

// Reason returns the decline reason recorded in the history.
func (c DeclineAssignmentCommand) Reason() string { return c.reason }
