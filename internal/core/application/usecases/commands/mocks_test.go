package commands_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/business"
	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/loyalty"
	"tracking/internal/core/ports"
)

type MockGuideRepository struct{ mock.Mock }

func (m *MockGuideRepository) Add(ctx context.Context, g *guide.Guide) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuideRepository) Update(ctx context.Context, g *guide.Guide) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuideRepository) Get(ctx context.Context, id kernel.UUID) (*guide.Guide, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guide.Guide), args.Error(1)
}

func (m *MockGuideRepository) GetByNumber(ctx context.Context, number kernel.GuideNumber) (*guide.Guide, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guide.Guide), args.Error(1)
}

func (m *MockGuideRepository) GetHistory(ctx context.Context, guideID kernel.UUID) ([]guide.HistoryEntry, error) {
	args := m.Called(ctx, guideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]guide.HistoryEntry), args.Error(1)
}

func (m *MockGuideRepository) NextSequence(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGuideRepository) CountDelivered(
	ctx context.Context, businessID kernel.UUID, from, to time.Time,
) (int, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockGuideRepository) SumDeliveredBasePrice(
	ctx context.Context, businessID kernel.UUID, from, to time.Time,
) (kernel.Money, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Get(0).(kernel.Money), args.Error(1)
}

func (m *MockGuideRepository) AddIncident(ctx context.Context, incident *guide.Incident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}

func (m *MockGuideRepository) GetIncident(ctx context.Context, id kernel.UUID) (*guide.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guide.Incident), args.Error(1)
}

func (m *MockGuideRepository) UpdateIncident(ctx context.Context, incident *guide.Incident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}

func (m *MockGuideRepository) AddEvidence(ctx context.Context, evidence *guide.Evidence) error {
	args := m.Called(ctx, evidence)
	return args.Error(0)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllActive(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockBusinessRepository struct{ mock.Mock }

func (m *MockBusinessRepository) Add(ctx context.Context, b *business.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepository) Update(ctx context.Context, b *business.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepository) Get(ctx context.Context, id kernel.UUID) (*business.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*business.Business), args.Error(1)
}

func (m *MockBusinessRepository) GetAll(ctx context.Context) ([]*business.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*business.Business), args.Error(1)
}

type MockCancellationRepository struct{ mock.Mock }

func (m *MockCancellationRepository) Add(ctx context.Context, c *guide.Cancellation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCancellationRepository) GetByGuide(ctx context.Context, guideID kernel.UUID) (*guide.Cancellation, error) {
	args := m.Called(ctx, guideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guide.Cancellation), args.Error(1)
}

type MockLoyaltyLevelRepository struct{ mock.Mock }

func (m *MockLoyaltyLevelRepository) GetAll(ctx context.Context) ([]*loyalty.Level, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*loyalty.Level), args.Error(1)
}

func (m *MockLoyaltyLevelRepository) Get(ctx context.Context, id kernel.UUID) (*loyalty.Level, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Level), args.Error(1)
}

type MockDiscountRepository struct{ mock.Mock }

func (m *MockDiscountRepository) Upsert(ctx context.Context, d *loyalty.MonthlyDiscount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiscountRepository) Get(
	ctx context.Context, businessID kernel.UUID, year int, month time.Month,
) (*loyalty.MonthlyDiscount, error) {
	args := m.Called(ctx, businessID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.MonthlyDiscount), args.Error(1)
}

type MockConfigRepository struct{ mock.Mock }

func (m *MockConfigRepository) GetDecimal(
	ctx context.Context, key string, fallback decimal.Decimal,
) (decimal.Decimal, error) {
	args := m.Called(ctx, key, fallback)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockUoW satisfies every command unit-of-work interface; tests wire only the
// repositories the handler under test touches.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) GuideRepository() ports.GuideRepository {
	args := m.Called()
	return args.Get(0).(ports.GuideRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) BusinessRepository() ports.BusinessRepository {
	args := m.Called()
	return args.Get(0).(ports.BusinessRepository)
}

func (m *MockUoW) CancellationRepository() ports.CancellationRepository {
	args := m.Called()
	return args.Get(0).(ports.CancellationRepository)
}

func (m *MockUoW) LoyaltyLevelRepository() ports.LoyaltyLevelRepository {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyLevelRepository)
}

func (m *MockUoW) DiscountRepository() ports.DiscountRepository {
	args := m.Called()
	return args.Get(0).(ports.DiscountRepository)
}

func (m *MockUoW) SystemConfigRepository() ports.SystemConfigRepository {
	args := m.Called()
	return args.Get(0).(ports.SystemConfigRepository)
}

type MockGuideUoWFactory struct{ mock.Mock }

func (m *MockGuideUoWFactory) Create() commands.GuideUoW {
	args := m.Called()
	return args.Get(0).(commands.GuideUoW)
}

type MockGuideBusinessUoWFactory struct{ mock.Mock }

func (m *MockGuideBusinessUoWFactory) Create() commands.GuideBusinessUoW {
	args := m.Called()
	return args.Get(0).(commands.GuideBusinessUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockCancellationUoWFactory struct{ mock.Mock }

func (m *MockCancellationUoWFactory) Create() commands.CancellationUoW {
	args := m.Called()
	return args.Get(0).(commands.CancellationUoW)
}

type MockRejectionUoWFactory struct{ mock.Mock }

func (m *MockRejectionUoWFactory) Create() commands.RejectionUoW {
	args := m.Called()
	return args.Get(0).(commands.RejectionUoW)
}

type MockDiscountUoWFactory struct{ mock.Mock }

func (m *MockDiscountUoWFactory) Create() commands.DiscountUoW {
	args := m.Called()
	return args.Get(0).(commands.DiscountUoW)
}

// recordingNotifier captures best-effort notifications synchronously.
type recordingNotifier struct {
	recipients []string
	subjects   []string
}

func (n *recordingNotifier) Dispatch(recipientEmail, subject, _ string) {
	n.recipients = append(n.recipients, recipientEmail)
	n.subjects = append(n.subjects, subject)
}
