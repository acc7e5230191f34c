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

func TestNewAttachEvidenceCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewAttachEvidenceCommand(
			kernel.NewUUID(), kernel.NewUUID(), guide.EvidencePhoto, "s3://evidence/123.jpg", "",
		)
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
	})

	t.Run("photo without file reference", func(t *testing.T) {
		_, err := commands.NewAttachEvidenceCommand(
			kernel.NewUUID(), kernel.NewUUID(), guide.EvidencePhoto, "", "",
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AttachEvidenceCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrAttachEvidenceCommandIsNotConstructed)
	})
}

func TestAttachEvidenceCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	aggregate, courierID := makePickedUpGuide(t)
	cmd, err := commands.NewAttachEvidenceCommand(
		aggregate.ID(), courierID, guide.EvidencePhoto, "s3://evidence/123.jpg", "entregado en recepción",
	)
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("GuideRepository").Return(guideRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	guideRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	guideRepo.On("AddEvidence", ctx, mock.AnythingOfType("*guide.Evidence")).Return(nil).Once()

	factory := new(MockGuideUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAttachEvidenceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	evidence := guideRepo.Calls[1].Arguments[1].(*guide.Evidence)
	assert.Equal(t, guide.EvidencePhoto, evidence.Kind())
	assert.Equal(t, "s3://evidence/123.jpg", evidence.FileRef())
	assert.True(t, evidence.UploadedBy().IsEqual(courierID))
	guideRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAttachEvidenceCommandHandler_Handle_StrangerCourier(t *testing.T) {
	ctx := t.Context()

	aggregate, _ := makePickedUpGuide(t)
	cmd, err := commands.NewAttachEvidenceCommand(
		aggregate.ID(), kernel.NewUUID(), guide.EvidencePhoto, "s3://evidence/123.jpg", "",
	)
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("GuideRepository").Return(guideRepo)
	uow.On("Rollback", ctx).Return(nil)
	guideRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockGuideUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAttachEvidenceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	guideRepo.AssertNotCalled(t, "AddEvidence", mock.Anything, mock.Anything)
}

func TestAttachEvidenceCommandHandler_Handle_BeforePickup(t *testing.T) {
	ctx := t.Context()

	aggregate, courierID := makeAssignedGuide(t)
	cmd, err := commands.NewAttachEvidenceCommand(
		aggregate.ID(), courierID, guide.EvidencePhoto, "s3://evidence/123.jpg", "",
	)
	require.NoError(t, err)

	guideRepo := new(MockGuideRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("GuideRepository").Return(guideRepo)
	uow.On("Rollback", ctx).Return(nil)
	guideRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockGuideUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAttachEvidenceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessConstraintViolation)
	guideRepo.AssertNotCalled(t, "AddEvidence", mock.Anything, mock.Anything)
}
