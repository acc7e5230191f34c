package commands

import (
	"context"
	"time"
)

// DeclineAssignmentCommandHandler handles a courier declining an assignment.
// The guide returns to Creada and the coordinator's pending pool; the decline
// reason lands in the history.
type DeclineAssignmentCommandHandler struct {
	uowFactory GuideUoWFactory
	now        func() time.Time
}

// NewDeclineAssignmentCommandHandler creates a handler for assignment rejection.
func NewDeclineAssignmentCommandHandler(uowFactory GuideUoWFactory) DeclineAssignmentCommandHandler {
	return DeclineAssignmentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the decline command.
func (h DeclineAssignmentCommandHandler) Handle(ctx context.Context, cmd DeclineAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	guideRepo := uow.GuideRepository()

	aggregate, err := guideRepo.Get(ctx, cmd.GuideID())
	if err != nil {
		return err
	}

	if err = aggregate.DeclineAssignment(cmd.CourierID(), cmd.Reason(), h.now()); err != nil {
		return err
	}

	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
