package commands

import (
	"context"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// CreateGuideCommandHandler handles the business logic for guide registration.
// Reserves the next guide number in the yearly sequence, creates the guide in
// Creada state and notifies the owning business.
type CreateGuideCommandHandler struct {
	uowFactory GuideBusinessUoWFactory
	notifier   Notifier
	now        func() time.Time
}

// NewCreateGuideCommandHandler creates a handler for guide registration.
func NewCreateGuideCommandHandler(uowFactory GuideBusinessUoWFactory, notifier Notifier) CreateGuideCommandHandler {
	return CreateGuideCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the guide creation command. The guide number is generated
// inside the transaction so two concurrent creations never share a sequence
// value.
func (h CreateGuideCommandHandler) Handle(ctx context.Context, cmd CreateGuideCommand) error {
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
	businessRepo := uow.BusinessRepository()

	owner, err := businessRepo.Get(ctx, cmd.BusinessID())
	if err != nil {
		return err
	}

	now := h.now()
	sequence, err := guideRepo.NextSequence(ctx, now.Year())
	if err != nil {
		return err
	}
	number, err := kernel.NewGuideNumber(now.Year(), sequence)
	if err != nil {
		return err
	}

	aggregate, err := guide.NewGuide(
		cmd.GuideID(), number, cmd.BusinessID(), cmd.OriginBranchID(),
		cmd.Recipient(), cmd.BasePrice(), cmd.Observations(), cmd.Priority(),
		cmd.CreatedBy(), now,
	)
	if err != nil {
		return err
	}

	if err = guideRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		h.notifier.Dispatch(
			owner.Email(),
			fmt.Sprintf("Guía %s creada", number),
			fmt.Sprintf("La guía %s para %s fue registrada.", number, cmd.Recipient().Name()),
		)
	}

	return nil
}
