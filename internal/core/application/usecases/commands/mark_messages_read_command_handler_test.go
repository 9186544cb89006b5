package commands_test

import (
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkMessagesReadCommandHandler_Handle_SenderMarksDriverMessages(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	sender := customerActor(t, senderID)
	pkg := pendingBooking(t, senderID)

	cmd, err := commands.NewMarkMessagesReadCommand(sender, pkg.ID())
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	chatRepo := new(MockChatRepository)
	uow := new(MockChatUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("ChatRepository").Return(chatRepo).Once(),
		chatRepo.On("MarkRead", ctx, pkg.ID(), senderID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkMessagesReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	chatRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkMessagesReadCommandHandler_Handle_AssignedDriverMayRead(t *testing.T) {
	ctx := t.Context()
	driver := driverActor(t)
	pkg := pendingBooking(t, kernel.NewUUID())
	require.NoError(t, pkg.Assign(driver.ID(), time.Now()))

	cmd, err := commands.NewMarkMessagesReadCommand(driver, pkg.ID())
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	chatRepo := new(MockChatRepository)
	uow := new(MockChatUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("ChatRepository").Return(chatRepo).Once(),
		chatRepo.On("MarkRead", ctx, pkg.ID(), driver.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkMessagesReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}

func TestMarkMessagesReadCommandHandler_Handle_OutsiderRejected(t *testing.T) {
	ctx := t.Context()
	pkg := pendingBooking(t, kernel.NewUUID())
	stranger := customerActor(t, kernel.NewUUID())

	cmd, err := commands.NewMarkMessagesReadCommand(stranger, pkg.ID())
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	chatRepo := new(MockChatRepository)
	uow := new(MockChatUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkMessagesReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	chatRepo.AssertNotCalled(t, "MarkRead", ctx, mock.Anything, mock.Anything)
}

func TestMarkMessagesReadCommandHandler_Handle_MissingPackage(t *testing.T) {
	ctx := t.Context()
	sender := customerActor(t, kernel.NewUUID())
	packageID := kernel.NewUUID()

	cmd, err := commands.NewMarkMessagesReadCommand(sender, packageID)
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	uow := new(MockChatUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, packageID).
			Return(nil, errs.NewObjectNotFoundError("package", packageID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkMessagesReadCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestMarkMessagesReadCommandHandler_Handle_UnconstructedCommand(t *testing.T) {
	handler := commands.NewMarkMessagesReadCommandHandler(new(MockChatUoWFactory))

	err := handler.Handle(t.Context(), commands.MarkMessagesReadCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrMarkMessagesReadCommandIsNotConstructed)
}
