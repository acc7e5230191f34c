package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/business"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// Fallback rates used when the system configuration has no value stored.
var (
	defaultCommissionRate    = decimal.RequireFromString("0.25")
	defaultPenaltyPrePickup  = decimal.RequireFromString("0.10")
	defaultPenaltyPostPickup = decimal.RequireFromString("0.20")
)

// CancelGuideCommandHandler runs the coordinator cancellation path.
//
// In one transaction it:
//   - validates the guide is still cancellable
//   - resolves the business's loyalty level from this month's completed
//     deliveries; a remaining Diamond free-cancellation credit is consumed and
//     waives the penalty
//   - otherwise charges the state-dependent penalty rate (post-pickup is
//     higher) from system configuration
//   - computes the courier commission, zero when the package was never picked
//     up
//   - moves the guide to Cancelada and writes the single Cancellation record
//
// Stakeholders are notified best-effort after commit.
type CancelGuideCommandHandler struct {
	uowFactory CancellationUoWFactory
	notifier   Notifier
	calculator services.CommissionCalculator
	loyalty    services.LoyaltyEngine
	now        func() time.Time
}

// NewCancelGuideCommandHandler creates a handler for guide cancellation.
func NewCancelGuideCommandHandler(uowFactory CancellationUoWFactory, notifier Notifier) CancelGuideCommandHandler {
	return CancelGuideCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		calculator: services.NewCommissionCalculator(),
		loyalty:    services.NewLoyaltyEngine(),
		now:        time.Now,
	}
}

// Handle processes the cancellation command.
func (h CancelGuideCommandHandler) Handle(ctx context.Context, cmd CancelGuideCommand) error {
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
	if !aggregate.IsCancellable() {
		return errs.NewAlreadyFinalizedError("guide", aggregate.Number().String())
	}

	owner, err := uow.BusinessRepository().Get(ctx, aggregate.BusinessID())
	if err != nil {
		return err
	}

	now := h.now()
	freeCredit, quota, err := h.resolveFreeCredit(ctx, uow, aggregate, owner, now)
	if err != nil {
		return err
	}

	cfg := uow.SystemConfigRepository()
	preRate, err := cfg.GetDecimal(ctx, ports.ConfigPenaltyPrePickup, defaultPenaltyPrePickup)
	if err != nil {
		return err
	}
	postRate, err := cfg.GetDecimal(ctx, ports.ConfigPenaltyPostPickup, defaultPenaltyPostPickup)
	if err != nil {
		return err
	}

	pickedUp := aggregate.PickupDate() != nil
	penalty, err := h.calculator.CancellationPenalty(
		aggregate.BasePrice(), pickedUp, freeCredit,
		services.PenaltyRates{PrePickup: preRate, PostPickup: postRate},
	)
	if err != nil {
		return err
	}

	commission, courierEmail, err := h.courierCommission(ctx, uow, aggregate, pickedUp)
	if err != nil {
		return err
	}

	if freeCredit {
		if err = owner.ConsumeFreeCancellation(quota); err != nil {
			return err
		}
		if err = uow.BusinessRepository().Update(ctx, owner); err != nil {
			return err
		}
	}

	coordinatorID := cmd.CoordinatorID()
	act, err := actor.NewActor(coordinatorID, actor.RoleCoordinator)
	if err != nil {
		return err
	}
	if err = aggregate.UpdateState(guide.Cancelada, act, cmd.Reason(), nil, now); err != nil {
		return err
	}
	if err = guideRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	record, err := guide.NewCancellation(
		aggregate.ID(), cmd.Kind(), &coordinatorID, cmd.Reason(), penalty, commission, now,
	)
	if err != nil {
		return err
	}
	if err = uow.CancellationRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		h.notifier.Dispatch(
			owner.Email(),
			fmt.Sprintf("Guía %s cancelada", aggregate.Number()),
			fmt.Sprintf("La guía %s fue cancelada. Motivo: %s. Penalización: %s.",
				aggregate.Number(), cmd.Reason(), penalty),
		)
		if courierEmail != "" {
			h.notifier.Dispatch(
				courierEmail,
				fmt.Sprintf("Guía %s cancelada", aggregate.Number()),
				fmt.Sprintf("La guía %s asignada a ti fue cancelada.", aggregate.Number()),
			)
		}
	}

	return nil
}

// resolveFreeCredit derives the business's level from this month's completed
// deliveries and reports whether a free-cancellation credit is available,
// together with the level's quota.
func (h CancelGuideCommandHandler) resolveFreeCredit(
	ctx context.Context,
	uow CancellationUoW,
	aggregate *guide.Guide,
	owner *business.Business,
	now time.Time,
) (bool, int, error) {
	levels, err := uow.LoyaltyLevelRepository().GetAll(ctx)
	if err != nil {
		return false, 0, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	delivered, err := uow.GuideRepository().CountDelivered(ctx, aggregate.BusinessID(), monthStart, now)
	if err != nil {
		return false, 0, err
	}

	level, err := h.loyalty.ResolveLevel(levels, delivered)
	if errors.Is(err, services.ErrNoQualifyingLevel) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}

	quota := level.FreeCancellations()
	return owner.HasFreeCancellationCredit(quota), quota, nil
}

// courierCommission computes the commission owed to the assigned courier, if
// any, and returns their notification address.
func (h CancelGuideCommandHandler) courierCommission(
	ctx context.Context,
	uow CancellationUoW,
	aggregate *guide.Guide,
	pickedUp bool,
) (kernel.Money, string, error) {
	if aggregate.CourierID() == nil {
		return kernel.ZeroMoney(), "", nil
	}

	assignee, err := uow.CourierRepository().Get(ctx, *aggregate.CourierID())
	if err != nil {
		return kernel.ZeroMoney(), "", err
	}

	sysRate, err := uow.SystemConfigRepository().GetDecimal(ctx, ports.ConfigCommissionRate, defaultCommissionRate)
	if err != nil {
		return kernel.ZeroMoney(), "", err
	}

	rate := h.calculator.RateFor(assignee, sysRate)
	commission, err := h.calculator.CancellationCommission(aggregate.BasePrice(), pickedUp, rate)
	if err != nil {
		return kernel.ZeroMoney(), "", err
	}
	return commission, assignee.Email(), nil
}
