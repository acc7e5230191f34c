package notify

import (
	"context"
	"time"

	"tracking/internal/core/ports"
	"tracking/internal/pkg/logger"
	"tracking/internal/pkg/metrics"
)

const dispatchTimeout = 30 * time.Second

// Dispatcher adapts a NotificationService to the fire-and-forget Dispatch
// contract command handlers expect. Each notification is sent on its own
// goroutine so the caller never waits on SMTP round trips; failures are
// counted and logged.
type Dispatcher struct {
	service ports.NotificationService
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewDispatcher creates a dispatcher over the given notification service.
func NewDispatcher(service ports.NotificationService, log logger.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		service: service,
		log:     log,
		metrics: m,
	}
}

// Dispatch sends the notification asynchronously.
func (d *Dispatcher) Dispatch(recipientEmail, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.service.Notify(ctx, recipientEmail, subject, body); err != nil {
			d.metrics.NotificationsFailed.Inc()
			d.log.Error("notification delivery failed",
				"recipient", recipientEmail,
				"subject", subject,
				"error", err,
			)
			return
		}
		d.metrics.NotificationsSent.Inc()
	}()
}
