// Package jobs provides the scheduled background tasks of the tracking
// service, built on github.com/robfig/cron/v3.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/logger"
)

// DefaultMonthlyDiscountSpec runs the recalculation at 02:00 on the first day
// of every month, covering the month that just closed.
const DefaultMonthlyDiscountSpec = "0 0 2 1 * *"

// DiscountCalculator runs one monthly discount calculation.
type DiscountCalculator interface {
	Handle(ctx context.Context, cmd commands.CalculateMonthlyDiscountCommand) error
}

// MonthlyDiscountJob recalculates loyalty discounts for every business at the
// turn of the month. Each business is processed independently; one failure
// never blocks the rest.
type MonthlyDiscountJob struct {
	handler    DiscountCalculator
	businesses ports.BusinessRepository
	spec       string
	cron       *cron.Cron
	log        logger.Logger
}

// NewMonthlyDiscountJob creates the discount recalculation job. An empty spec
// falls back to DefaultMonthlyDiscountSpec.
func NewMonthlyDiscountJob(
	handler DiscountCalculator,
	businesses ports.BusinessRepository,
	spec string,
	log logger.Logger,
) *MonthlyDiscountJob {
	if spec == "" {
		spec = DefaultMonthlyDiscountSpec
	}
	return &MonthlyDiscountJob{
		handler:    handler,
		businesses: businesses,
		spec:       spec,
		cron:       cron.New(cron.WithSeconds()),
		log:        log.With("component", "monthly_discount_job"),
	}
}

// Start schedules the job.
func (j *MonthlyDiscountJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Run(context.Background(), time.Now())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("monthly discount job started", "spec", j.spec)
	return nil
}

// Stop stops the job.
func (j *MonthlyDiscountJob) Stop() {
	j.cron.Stop()
	j.log.Info("monthly discount job stopped")
}

// Run recalculates discounts for the month preceding now, for every business.
// Exported so an operator endpoint or test can trigger a pass directly.
func (j *MonthlyDiscountJob) Run(ctx context.Context, now time.Time) {
	period := now.AddDate(0, -1, 0)
	year, month := period.Year(), period.Month()

	businesses, err := j.businesses.GetAll(ctx)
	if err != nil {
		j.log.Error("listing businesses failed", "error", err)
		return
	}

	processed := 0
	for _, b := range businesses {
		cmd, err := commands.NewCalculateMonthlyDiscountCommand(b.ID(), year, month)
		if err != nil {
			j.log.Error("building discount command failed", "businessID", b.ID().String(), "error", err)
			continue
		}
		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.log.Error("discount calculation failed", "businessID", b.ID().String(), "error", err)
			continue
		}
		processed++
	}

	j.log.Info("monthly discount pass finished",
		"year", year,
		"month", int(month),
		"businesses", len(businesses),
		"processed", processed,
	)
}
