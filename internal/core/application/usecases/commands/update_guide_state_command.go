package commands

import (
	"errors"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrUpdateGuideStateCommandIsNotConstructed = errors.New(
	"UpdateGuideStateCommand must be created via NewUpdateGuideStateCommand constructor",
)

// UpdateGuideStateCommand represents a request to move a guide one step
// through its lifecycle. The acting user is explicit: the aggregate decides
// whether that actor may perform the transition.
//
// Cancellations and rejections do not go through this command; they have
// dedicated commands that run the cancellation engine.
//
// Example:
//
//	act, _ := actor.NewActor(courierID, actor.RoleCourier)
//	cmd, err := NewUpdateGuideStateCommand(guideID, guide.Recogida, act, "paquete recogido", nil)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidStateTransition) {
//	    // target not reachable from the current state
//	}
type UpdateGuideStateCommand struct { //nolint:recvcheck //using for validation
	guideID      kernel.UUID
	target       guide.State
	actor        actor.Actor
	observations string
	location     *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateGuideStateCommand creates a state transition command. The optional
// location is recorded in the guide history.
func NewUpdateGuideStateCommand(
	guideID kernel.UUID,
	target guide.State,
	act actor.Actor,
	observations string,
	location *kernel.GeoPoint,
) (UpdateGuideStateCommand, error) {
	cmd := UpdateGuideStateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		guideID.Validate(),
		target.Validate(),
		act.Validate(),
	); err != nil {
		return UpdateGuideStateCommand{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return UpdateGuideStateCommand{}, err
		}
	}

	cmd.guideID = guideID
	cmd.target = target
	cmd.actor = act
	cmd.observations = observations
	cmd.location = location
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateGuideStateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateGuideStateCommandIsNotConstructed)
}

// GuideID returns the guide to transition.
func (c UpdateGuideStateCommand) GuideID() kernel.UUID { return c.guideID }

// Target returns the requested state.
func (c UpdateGuideStateCommand) Target() guide.State { return c.target }

// Actor returns the acting user.
func (c UpdateGuideStateCommand) Actor() actor.Actor { return c.actor }

// Observations returns the note recorded with the transition.
func (c UpdateGuideStateCommand) Observations() string { return c.observations }

// Location returns the optional geolocation of the transition.
func (c UpdateGuideStateCommand) Location() *kernel.GeoPoint { return c.location }
