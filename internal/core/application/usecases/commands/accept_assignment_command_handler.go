package commands

import (
	"context"
	"time"
)

// AcceptAssignmentCommandHandler records a courier's acceptance of an
// assignment, stamping assignmentAcceptedAt exactly once.
type AcceptAssignmentCommandHandler struct {
	uowFactory GuideUoWFactory
	now        func() time.Time
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment acceptance.
func NewAcceptAssignmentCommandHandler(uowFactory GuideUoWFactory) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the acceptance command.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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

	if err = aggregate.AcceptAssignment(cmd.CourierID(), h.now()); err != nil {
		return err
	}

	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
