package commands

import (
	"context"
	"fmt"
	"time"

	"tracking/internal/pkg/errs"
)

// ReassignCourierCommandHandler handles coordinator-driven reassignment.
// The replacement courier must hold an active contract; the guide keeps its
// original assignment date and the new courier must accept again.
type ReassignCourierCommandHandler struct {
	uowFactory AssignmentUoWFactory
	notifier   Notifier
	now        func() time.Time
}

// NewReassignCourierCommandHandler creates a handler for guide reassignment.
func NewReassignCourierCommandHandler(uowFactory AssignmentUoWFactory, notifier Notifier) ReassignCourierCommandHandler {
	return ReassignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the reassignment command.
func (h ReassignCourierCommandHandler) Handle(ctx context.Context, cmd ReassignCourierCommand) error {
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

	replacement, err := courierRepo.Get(ctx, cmd.NewCourierID())
	if err != nil {
		return err
	}

	now := h.now()
	if !replacement.HasActiveContract(now) {
		return errs.NewBusinessConstraintViolationError("courier has no active contract")
	}

	if err = aggregate.Reassign(cmd.NewCourierID(), cmd.Reason(), cmd.CoordinatorID(), now); err != nil {
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
			replacement.Email(),
			fmt.Sprintf("Reasignación: guía %s", aggregate.Number()),
			fmt.Sprintf("Se te reasignó la guía %s. Motivo: %s", aggregate.Number(), cmd.Reason()),
		)
	}

	return nil
}
