package ports

import "context"

// NotificationService delivers state-change emails to stakeholders.
//
// Dispatch is best-effort: implementations and callers must never let a
// notification failure abort or roll back the guide mutation that triggered
// it. Handlers dispatch after commit, in a goroutine, and only log failures.
type NotificationService interface {
	Notify(ctx context.Context, recipientEmail, subject, body string) error
}
