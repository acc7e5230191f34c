package commands

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/guide"
)

// ReportIncidentCommandHandler handles incident reporting. The guide moves to
// Incidencia, remembering the state it held, and the incident row is written
// in the same transaction.
type ReportIncidentCommandHandler struct {
	uowFactory GuideUoWFactory
	now        func() time.Time
}

// NewReportIncidentCommandHandler creates a handler for incident reporting.
func NewReportIncidentCommandHandler(uowFactory GuideUoWFactory) ReportIncidentCommandHandler {
	return ReportIncidentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the incident report.
func (h ReportIncidentCommandHandler) Handle(ctx context.Context, cmd ReportIncidentCommand) error {
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

	act, err := actor.NewActor(cmd.CourierID(), actor.RoleCourier)
	if err != nil {
		return err
	}

	now := h.now()
	if err = aggregate.UpdateState(guide.Incidencia, act, cmd.Description(), cmd.Location(), now); err != nil {
		return err
	}
	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	incident, err := guide.NewIncident(
		cmd.GuideID(), cmd.IncidentType(), cmd.Description(), cmd.Location(), cmd.CourierID(), now,
	)
	if err != nil {
		return err
	}
	if err = guideRepo.AddIncident(ctx, incident); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
