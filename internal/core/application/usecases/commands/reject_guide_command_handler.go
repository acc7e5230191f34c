package commands

import (
	"context"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// RejectGuideResult is the public response of a customer rejection.
type RejectGuideResult struct {
	GuideNumber            string
	NewStatus              string
	Message                string
	ReturnProcessInitiated bool
}

// RejectGuideCommandHandler runs the public customer rejection path.
//
// Rejection is only reachable while the delivery is underway (Asignada
// through Entrega Proxima); the state machine enforces that. Unlike
// coordinator cancellations it never charges a penalty and never pays the
// courier: the Cancellation row is written with both amounts at 0.00 and a
// nil acting user. A requested return does not spawn a new guide; it is
// recorded in the rejection observations and echoed back to the caller.
type RejectGuideCommandHandler struct {
	uowFactory RejectionUoWFactory
	notifier   Notifier
	now        func() time.Time
}

// NewRejectGuideCommandHandler creates a handler for public rejection.
func NewRejectGuideCommandHandler(uowFactory RejectionUoWFactory, notifier Notifier) RejectGuideCommandHandler {
	return RejectGuideCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the rejection command.
func (h RejectGuideCommandHandler) Handle(ctx context.Context, cmd RejectGuideCommand) (RejectGuideResult, error) {
	if err := cmd.Validate(); err != nil {
		return RejectGuideResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RejectGuideResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	guideRepo := uow.GuideRepository()

	aggregate, err := guideRepo.GetByNumber(ctx, cmd.GuideNumber())
	if err != nil {
		return RejectGuideResult{}, err
	}

	owner, err := uow.BusinessRepository().Get(ctx, aggregate.BusinessID())
	if err != nil {
		return RejectGuideResult{}, err
	}

	now := h.now()
	customer := actor.NewCustomerActor()
	observations := h.observations(cmd)

	if err = aggregate.UpdateState(guide.Rechazada, customer, observations, nil, now); err != nil {
		return RejectGuideResult{}, err
	}
	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return RejectGuideResult{}, err
	}

	record, err := guide.NewCancellation(
		aggregate.ID(), guide.CancellationByCustomer, nil,
		cmd.RejectionReason(), kernel.ZeroMoney(), kernel.ZeroMoney(), now,
	)
	if err != nil {
		return RejectGuideResult{}, err
	}
	if err = uow.CancellationRepository().Add(ctx, record); err != nil {
		return RejectGuideResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RejectGuideResult{}, err
	}

	if h.notifier != nil {
		h.notifier.Dispatch(
			owner.Email(),
			fmt.Sprintf("Guía %s rechazada por el cliente", aggregate.Number()),
			observations,
		)
	}

	return RejectGuideResult{
		GuideNumber:            aggregate.Number().String(),
		NewStatus:              aggregate.State().String(),
		Message:                "Rechazo registrado",
		ReturnProcessInitiated: cmd.RequiresReturn(),
	}, nil
}

func (h RejectGuideCommandHandler) observations(cmd RejectGuideCommand) string {
	if cmd.RequiresReturn() {
		return fmt.Sprintf("Rechazada por el cliente: %s. Proceso de devolución iniciado.", cmd.RejectionReason())
	}
	return fmt.Sprintf("Rechazada por el cliente: %s", cmd.RejectionReason())
}
