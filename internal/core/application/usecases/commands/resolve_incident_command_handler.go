package commands

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/actor"
)

// ResolveIncidentCommandHandler closes an open incident and resumes the guide
// in the state it held before the incident. Escalating an incident into a
// cancellation goes through CancelGuideCommand instead.
type ResolveIncidentCommandHandler struct {
	uowFactory GuideUoWFactory
	now        func() time.Time
}

// NewResolveIncidentCommandHandler creates a handler for incident resolution.
func NewResolveIncidentCommandHandler(uowFactory GuideUoWFactory) ResolveIncidentCommandHandler {
	return ResolveIncidentCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the resolution command.
func (h ResolveIncidentCommandHandler) Handle(ctx context.Context, cmd ResolveIncidentCommand) error {
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

	incident, err := guideRepo.GetIncident(ctx, cmd.IncidentID())
	if err != nil {
		return err
	}

	aggregate, err := guideRepo.Get(ctx, incident.GuideID())
	if err != nil {
		return err
	}

	now := h.now()
	if err = incident.Resolve(cmd.ResolverID(), cmd.Resolution(), now); err != nil {
		return err
	}

	act, err := actor.NewActor(cmd.ResolverID(), actor.RoleCoordinator)
	if err != nil {
		return err
	}
	if err = aggregate.ResumeFromIncident(act, cmd.Resolution(), now); err != nil {
		return err
	}

	if err = guideRepo.UpdateIncident(ctx, incident); err != nil {
		return err
	}
	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
