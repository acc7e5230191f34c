package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/business"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/jobs"
	"tracking/internal/pkg/logger"
)

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

type stubCalculator struct {
	commands []commands.CalculateMonthlyDiscountCommand
	fail     map[kernel.UUID]error
}

func (s *stubCalculator) Handle(_ context.Context, cmd commands.CalculateMonthlyDiscountCommand) error {
	s.commands = append(s.commands, cmd)
	if err, ok := s.fail[cmd.BusinessID()]; ok {
		return err
	}
	return nil
}

func makeBusiness(t *testing.T, name string) *business.Business {
	t.Helper()
	b, err := business.NewBusiness(kernel.NewUUID(), name, name+"@example.com")
	require.NoError(t, err)
	return b
}

func TestMonthlyDiscountJob_Run_CalculatesPreviousMonth(t *testing.T) {
	ctx := t.Context()

	first := makeBusiness(t, "panaderia-central")
	second := makeBusiness(t, "floristeria-lila")

	repo := new(MockBusinessRepository)
	repo.On("GetAll", ctx).Return([]*business.Business{first, second}, nil).Once()

	calc := &stubCalculator{}
	job := jobs.NewMonthlyDiscountJob(calc, repo, "", logger.NewNop())

	job.Run(ctx, time.Date(2026, time.March, 1, 0, 5, 0, 0, time.UTC))

	require.Len(t, calc.commands, 2)
	for _, cmd := range calc.commands {
		assert.Equal(t, 2026, cmd.Year())
		assert.Equal(t, time.February, cmd.Month())
	}
	assert.Equal(t, first.ID(), calc.commands[0].BusinessID())
	assert.Equal(t, second.ID(), calc.commands[1].BusinessID())
	repo.AssertExpectations(t)
}

func TestMonthlyDiscountJob_Run_JanuaryRollsBackToDecember(t *testing.T) {
	ctx := t.Context()

	b := makeBusiness(t, "cafeteria-norte")

	repo := new(MockBusinessRepository)
	repo.On("GetAll", ctx).Return([]*business.Business{b}, nil).Once()

	calc := &stubCalculator{}
	job := jobs.NewMonthlyDiscountJob(calc, repo, "", logger.NewNop())

	job.Run(ctx, time.Date(2026, time.January, 1, 0, 5, 0, 0, time.UTC))

	require.Len(t, calc.commands, 1)
	assert.Equal(t, 2025, calc.commands[0].Year())
	assert.Equal(t, time.December, calc.commands[0].Month())
}

func TestMonthlyDiscountJob_Run_ContinuesPastFailures(t *testing.T) {
	ctx := t.Context()

	failing := makeBusiness(t, "mercado-sur")
	healthy := makeBusiness(t, "libreria-este")

	repo := new(MockBusinessRepository)
	repo.On("GetAll", ctx).Return([]*business.Business{failing, healthy}, nil).Once()

	calc := &stubCalculator{fail: map[kernel.UUID]error{failing.ID(): errors.New("boom")}}
	job := jobs.NewMonthlyDiscountJob(calc, repo, "", logger.NewNop())

	job.Run(ctx, time.Date(2026, time.March, 1, 0, 5, 0, 0, time.UTC))

	require.Len(t, calc.commands, 2)
	assert.Equal(t, healthy.ID(), calc.commands[1].BusinessID())
}

func TestMonthlyDiscountJob_Run_RepositoryFailure(t *testing.T) {
	ctx := t.Context()

	repo := new(MockBusinessRepository)
	repo.On("GetAll", ctx).Return(nil, errors.New("db down")).Once()

	calc := &stubCalculator{}
	job := jobs.NewMonthlyDiscountJob(calc, repo, "", logger.NewNop())

	job.Run(ctx, time.Date(2026, time.March, 1, 0, 5, 0, 0, time.UTC))

	assert.Empty(t, calc.commands)
}
