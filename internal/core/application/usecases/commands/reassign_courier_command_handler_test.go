package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

func TestNewReassignCourierCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewReassignCourierCommand(
			kernel.NewUUID(), kernel.NewUUID(), "mensajero no disponible", kernel.NewUUID(),
		)
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
	})

	t.Run("empty reason", func(t *testing.T) {
		_, err := commands.NewReassignCourierCommand(
			kernel.NewUUID(), kernel.NewUUID(), "", kernel.NewUUID(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.ReassignCourierCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrReassignCourierCommandIsNotConstructed)
	})
}

func TestReassignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	aggregate, _ := makeAssignedGuide(t)
	originalAssignment := aggregate.AssignmentDate()
	replacementID := kernel.NewUUID()
	replacement := makeCourier(t, replacementID, nil)

	cmd, err := commands.NewReassignCourierCommand(
		aggregate.ID(), replacementID, "mensajero no disponible", kernel.NewUUID(),
	)
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("GuideRepository").Return(guideRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	guideRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	courierRepo.On("Get", ctx, replacementID).Return(replacement, nil).Once()
	guideRepo.On("Update", ctx, aggregate).Return(nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	handler := commands.NewReassignCourierCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, guide.Asignada, aggregate.State())
	require.NotNil(t, aggregate.CourierID())
	assert.True(t, aggregate.CourierID().IsEqual(replacementID))
	// The original assignment date survives; acceptance starts over.
	assert.Equal(t, originalAssignment, aggregate.AssignmentDate())
	assert.Nil(t, aggregate.AssignmentAcceptedAt())

	require.Len(t, notifier.recipients, 1)
	assert.Equal(t, "pedro@example.test", notifier.recipients[0])
	guideRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReassignCourierCommandHandler_Handle_NoActiveContract(t *testing.T) {
	ctx := t.Context()

	aggregate, _ := makeAssignedGuide(t)
	replacementID := kernel.NewUUID()
	expiredFrom := testTime.AddDate(-2, 0, 0)
	expiredTo := testTime.AddDate(-1, 0, 0)
	replacement := makeContractCourier(t, replacementID, &expiredFrom, &expiredTo)

	cmd, err := commands.NewReassignCourierCommand(
		aggregate.ID(), replacementID, "mensajero no disponible", kernel.NewUUID(),
	)
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("GuideRepository").Return(guideRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("Rollback", ctx).Return(nil)

	guideRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	courierRepo.On("Get", ctx, replacementID).Return(replacement, nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignCourierCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessConstraintViolation)
	guideRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestReassignCourierCommandHandler_Handle_FinalizedGuide(t *testing.T) {
	ctx := t.Context()

	aggregate := deliveredGuide(t)
	replacementID := kernel.NewUUID()
	replacement := makeCourier(t, replacementID, nil)

	cmd, err := commands.NewReassignCourierCommand(
		aggregate.ID(), replacementID, "mensajero no disponible", kernel.NewUUID(),
	)
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("GuideRepository").Return(guideRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("Rollback", ctx).Return(nil)

	guideRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	courierRepo.On("Get", ctx, replacementID).Return(replacement, nil).Once()

	factory := new(MockAssignmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignCourierCommandHandler(factory, nil)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAlreadyFinalized)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
