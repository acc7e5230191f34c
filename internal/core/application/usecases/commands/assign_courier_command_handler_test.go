package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

func TestNewAssignCourierCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewAssignCourierCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
	})

	t.Run("invalid ids", func(t *testing.T) {
		_, err := commands.NewAssignCourierCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AssignCourierCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrAssignCourierCommandIsNotConstructed)
	})
}

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testGuide := makeGuide(t)
	courierID := kernel.NewUUID()
	testCourier := makeCourier(t, courierID, nil)

	cmd, err := commands.NewAssignCourierCommand(testGuide.ID(), courierID, kernel.NewUUID())
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GuideRepository").Return(guideRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		guideRepo.On("Get", ctx, testGuide.ID()).Return(testGuide, nil).Once(),
		courierRepo.On("Get", ctx, courierID).Return(testCourier, nil).Once(),
		guideRepo.On("Update", ctx, mock.AnythingOfType("*guide.Guide")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewAssignCourierCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, guide.Asignada, testGuide.State())
	require.NotNil(t, testGuide.CourierID())
	assert.True(t, testGuide.CourierID().IsEqual(courierID))
	require.Len(t, notifier.recipients, 1)
	assert.Equal(t, "pedro@example.test", notifier.recipients[0])
	guideRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockAssignmentUoWFactory)
	handler := commands.NewAssignCourierCommandHandler(factory, nil)
	err := handler.Handle(ctx, commands.AssignCourierCommand{})

	require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignCourierCommandHandler_Handle_NoActiveContract(t *testing.T) {
	ctx := t.Context()

	testGuide := makeGuide(t)
	courierID := kernel.NewUUID()
	// Contract expired a year before the assignment attempt.
	from := testTime.AddDate(-2, 0, 0)
	until := testTime.AddDate(-1, 0, 0)
	expired, err := courier.NewCourier(courierID, "Pedro", "pedro@example.test", &from, &until, nil)
	require.NoError(t, err)

	cmd, err := commands.NewAssignCourierCommand(testGuide.ID(), courierID, kernel.NewUUID())
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GuideRepository").Return(guideRepo).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		guideRepo.On("Get", ctx, testGuide.ID()).Return(testGuide, nil).Once(),
		courierRepo.On("Get", ctx, courierID).Return(expired, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessConstraintViolation)
	assert.Equal(t, guide.Creada, testGuide.State())
	guideRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_GuideNotFound(t *testing.T) {
	ctx := t.Context()

	guideID := kernel.NewUUID()
	cmd, err := commands.NewAssignCourierCommand(guideID, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GuideRepository").Return(guideRepo).Once(),
		uow.On("CourierRepository").Return(new(MockCourierRepository)).Once(),
		guideRepo.On("Get", ctx, guideID).Return(nil, errs.NewObjectNotFoundError("guideID", guideID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
