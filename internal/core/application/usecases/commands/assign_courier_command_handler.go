package commands

import (
	"context"
	"fmt"
	"time"

	"tracking/internal/pkg/errs"
)

// AssignCourierCommandHandler orchestrates the courier assignment process.
// Verifies the courier holds an active contract on the assignment date, moves
// the guide to Asignada and notifies the courier.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, notifier)
//	cmd, _ := NewAssignCourierCommand(guideID, courierID, coordinatorID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrBusinessConstraintViolation):
//	    log.Println("courier has no active contract or guide is not assignable")
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    log.Println("guide changed concurrently, retry")
//	}
type AssignCourierCommandHandler struct {
	uowFactory AssignmentUoWFactory
	notifier   Notifier
	now        func() time.Time
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(uowFactory AssignmentUoWFactory, notifier Notifier) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the assignment command.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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
	courierRepo := uow.CourierRepository()

	aggregate, err := guideRepo.Get(ctx, cmd.GuideID())
	if err != nil {
		return err
	}

	assignee, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	now := h.now()
	if !assignee.HasActiveContract(now) {
		return errs.NewBusinessConstraintViolationError("courier has no active contract")
	}

	if err = aggregate.Assign(cmd.CourierID(), cmd.CoordinatorID(), now); err != nil {
		return err
	}

	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		h.notifier.Dispatch(
			assignee.Email(),
			fmt.Sprintf("Nueva asignación: guía %s", aggregate.Number()),
			fmt.Sprintf("Se te asignó la guía %s para %s, %s.",
				aggregate.Number(), aggregate.Recipient().Address(), aggregate.Recipient().City()),
		)
	}

	return nil
}
