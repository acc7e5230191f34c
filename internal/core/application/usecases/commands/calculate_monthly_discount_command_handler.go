package commands

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/loyalty"
	"tracking/internal/core/domain/services"
)

// CalculateMonthlyDiscountCommandHandler recomputes the MonthlyDiscount row
// for one (business, year, month) period.
//
// The level is resolved from the completed deliveries of that period; when no
// bracket matches, the period is stored with a zero discount. The upsert
// replaces any previous calculation for the same period, so the operation is
// safe to re-run and is also scheduled as a cron job over all businesses.
type CalculateMonthlyDiscountCommandHandler struct {
	uowFactory DiscountUoWFactory
	loyalty    services.LoyaltyEngine
	now        func() time.Time
}

// NewCalculateMonthlyDiscountCommandHandler creates a handler for monthly
// discount recalculation.
func NewCalculateMonthlyDiscountCommandHandler(uowFactory DiscountUoWFactory) CalculateMonthlyDiscountCommandHandler {
	return CalculateMonthlyDiscountCommandHandler{
		uowFactory: uowFactory,
		loyalty:    services.NewLoyaltyEngine(),
		now:        time.Now,
	}
}

// Handle processes the discount calculation command.
func (h CalculateMonthlyDiscountCommandHandler) Handle(ctx context.Context, cmd CalculateMonthlyDiscountCommand) error {
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

	// Period window: first instant of the month through the last instant
	// before the next month.
	from := time.Date(cmd.Year(), cmd.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	delivered, err := guideRepo.CountDelivered(ctx, cmd.BusinessID(), from, to)
	if err != nil {
		return err
	}
	totalBefore, err := guideRepo.SumDeliveredBasePrice(ctx, cmd.BusinessID(), from, to)
	if err != nil {
		return err
	}

	levels, err := uow.LoyaltyLevelRepository().GetAll(ctx)
	if err != nil {
		return err
	}

	percentage := decimal.Zero
	var appliedLevelID *kernel.UUID
	level, err := h.loyalty.ResolveLevel(levels, delivered)
	switch {
	case errors.Is(err, services.ErrNoQualifyingLevel):
		// No bracket matches: the period is stored without a discount.
	case err != nil:
		return err
	default:
		percentage = level.DiscountPercentage()
		levelID := level.ID()
		appliedLevelID = &levelID

		if err = owner.CacheLevel(levelID); err != nil {
			return err
		}
		if err = businessRepo.Update(ctx, owner); err != nil {
			return err
		}
	}

	discountAmount, totalAfter := h.loyalty.MonthlyDiscount(totalBefore, percentage)

	row, err := loyalty.NewMonthlyDiscount(
		kernel.NewUUID(), cmd.BusinessID(), cmd.Year(), cmd.Month(),
		delivered, totalBefore, percentage, discountAmount, totalAfter,
		appliedLevelID, h.now(),
	)
	if err != nil {
		return err
	}
	if err = uow.DiscountRepository().Upsert(ctx, row); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
