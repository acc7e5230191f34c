package jobs

import (
	"fmt"

	"tracking/internal/core/ports"
	"tracking/internal/pkg/logger"
)

// JobManager coordinates the scheduled jobs of the service.
type JobManager struct {
	monthlyDiscountJob *MonthlyDiscountJob
}

// NewJobManager creates a job manager with all scheduled jobs wired.
func NewJobManager(
	discountHandler DiscountCalculator,
	businesses ports.BusinessRepository,
	discountSpec string,
	log logger.Logger,
) *JobManager {
	return &JobManager{
		monthlyDiscountJob: NewMonthlyDiscountJob(discountHandler, businesses, discountSpec, log),
	}
}

// StartAll starts every scheduled job.
func (jm *JobManager) StartAll() error {
	if err := jm.monthlyDiscountJob.Start(); err != nil {
		return fmt.Errorf("failed to start monthly discount job: %w", err)
	}
	return nil
}

// StopAll stops every scheduled job.
func (jm *JobManager) StopAll() {
	jm.monthlyDiscountJob.Stop()
}
