package commands

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/pkg/errs"
)

// AttachEvidenceCommandHandler persists proof-of-delivery artifacts. Only the
// courier currently assigned to the guide may attach evidence, and only once
// the package has been picked up.
type AttachEvidenceCommandHandler struct {
	uowFactory GuideUoWFactory
	now        func() time.Time
}

// NewAttachEvidenceCommandHandler creates a handler for evidence attachment.
func NewAttachEvidenceCommandHandler(uowFactory GuideUoWFactory) AttachEvidenceCommandHandler {
	return AttachEvidenceCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the evidence attachment.
func (h AttachEvidenceCommandHandler) Handle(ctx context.Context, cmd AttachEvidenceCommand) error {
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

	courierID := cmd.CourierID()
	if aggregate.CourierID() == nil || !aggregate.CourierID().IsEqual(courierID) {
		return errs.NewUnauthorizedError("courier", "attach evidence to a guide not assigned to them")
	}
	if aggregate.PickupDate() == nil {
		return errs.NewBusinessConstraintViolationError("evidence requires a picked-up guide")
	}

	evidence, err := guide.NewEvidence(
		cmd.GuideID(), cmd.Kind(), cmd.FileRef(), cmd.Notes(), courierID, h.now(),
	)
	if err != nil {
		return err
	}
	if err = guideRepo.AddEvidence(ctx, evidence); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
