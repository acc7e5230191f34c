package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracking/internal/pkg/logger"
	"tracking/internal/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("notify_test")

type stubService struct {
	err   error
	calls chan call
}

type call struct {
	recipient string
	subject   string
	body      string
}

func (s *stubService) Notify(_ context.Context, recipientEmail, subject, body string) error {
	s.calls <- call{recipient: recipientEmail, subject: subject, body: body}
	return s.err
}

func TestDispatcher_DeliversAsynchronously(t *testing.T) {
	service := &stubService{calls: make(chan call, 1)}
	dispatcher := NewDispatcher(service, logger.NewNop(), testMetrics)

	dispatcher.Dispatch("ops@acme.test", "Guía entregada", "La guía 202500000042 fue entregada")

	select {
	case received := <-service.calls:
		assert.Equal(t, "ops@acme.test", received.recipient)
		assert.Equal(t, "Guía entregada", received.subject)
	case <-time.After(2 * time.Second):
		require.Fail(t, "notification was never delivered")
	}
}

func TestDispatcher_SwallowsFailures(t *testing.T) {
	service := &stubService{
		err:   errors.New("smtp unavailable"),
		calls: make(chan call, 1),
	}
	dispatcher := NewDispatcher(service, logger.NewNop(), testMetrics)

	// Must not panic or block the caller.
	dispatcher.Dispatch("pedro@example.test", "Asignación", "Se te asignó la guía 202500000042")

	select {
	case <-service.calls:
	case <-time.After(2 * time.Second):
		require.Fail(t, "notification was never attempted")
	}
}

func TestLogNotificationService_NeverFails(t *testing.T) {
	service := NewLogNotificationService(logger.NewNop())

	err := service.Notify(t.Context(), "ops@acme.test", "subject", "body")
	assert.NoError(t, err)
}
