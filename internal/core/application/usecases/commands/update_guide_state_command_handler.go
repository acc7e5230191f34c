package commands

import (
	"context"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/pkg/errs"
)

// UpdateGuideStateCommandHandler handles forward lifecycle transitions and
// incident reporting through the guide state machine. Terminal transitions to
// Cancelada and Rechazada are refused here: they carry penalty and commission
// side effects that only the cancellation commands compute.
//
// On delivery the owning business is notified best-effort after commit.
type UpdateGuideStateCommandHandler struct {
	uowFactory GuideBusinessUoWFactory
	notifier   Notifier
	now        func() time.Time
}

// NewUpdateGuideStateCommandHandler creates a handler for state transitions.
func NewUpdateGuideStateCommandHandler(uowFactory GuideBusinessUoWFactory, notifier Notifier) UpdateGuideStateCommandHandler {
	return UpdateGuideStateCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the state transition command.
func (h UpdateGuideStateCommandHandler) Handle(ctx context.Context, cmd UpdateGuideStateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Target() == guide.Cancelada || cmd.Target() == guide.Rechazada {
		return errs.NewBusinessConstraintViolationError(
			"cancellations and rejections go through their dedicated operations",
		)
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

	owner, err := uow.BusinessRepository().Get(ctx, aggregate.BusinessID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateState(cmd.Target(), cmd.Actor(), cmd.Observations(), cmd.Location(), h.now()); err != nil {
		return err
	}

	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil && cmd.Target() == guide.Entregada {
		h.notifier.Dispatch(
			owner.Email(),
			fmt.Sprintf("Guía %s entregada", aggregate.Number()),
			fmt.Sprintf("La guía %s fue entregada a %s.", aggregate.Number(), aggregate.Recipient().Name()),
		)
	}

	return nil
}
