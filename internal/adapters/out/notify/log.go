package notify

import (
	"context"

	"tracking/internal/pkg/logger"
)

// LogNotificationService writes notifications to the log instead of sending
// email. Used in local development and as a fallback when Gmail credentials
// are not configured.
type LogNotificationService struct {
	log logger.Logger
}

// NewLogNotificationService creates a log-only notification service.
func NewLogNotificationService(log logger.Logger) *LogNotificationService {
	return &LogNotificationService{log: log}
}

// Notify logs the notification.
func (s *LogNotificationService) Notify(_ context.Context, recipientEmail, subject, body string) error {
	s.log.Info("notification",
		"recipient", recipientEmail,
		"subject", subject,
		"body", body,
	)
	return nil
}
