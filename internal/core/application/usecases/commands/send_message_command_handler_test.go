package commands_test

import (
	"strings"
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSendMessageCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	sender := customerActor(t, senderID)
	pkg := pendingBooking(t, senderID)

	cmd, err := commands.NewSendMessageCommand(sender, pkg.ID(), "  where is my parcel?  ")
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	chatRepo := new(MockChatRepository)
	uow := new(MockChatUoW)
	notifier := new(MockMessageNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("ChatRepository").Return(chatRepo).Once(),
		chatRepo.On("Add", ctx, mock.AnythingOfType("*chat.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.AnythingOfType("*chat.Message")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendMessageCommandHandler(factory, notifier)
	message, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "where is my parcel?", message.Text())
	assert.True(t, message.SenderID().IsEqual(senderID))
	assert.False(t, message.IsRead())
	chatRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSendMessageCommandHandler_Handle_AssignedDriverMayWrite(t *testing.T) {
	ctx := t.Context()
	driver := driverActor(t)
	pkg := pendingBooking(t, kernel.NewUUID())
	require.NoError(t, pkg.Assign(driver.ID(), time.Now()))

	cmd, err := commands.NewSendMessageCommand(driver, pkg.ID(), "picking it up now")
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	chatRepo := new(MockChatRepository)
	uow := new(MockChatUoW)
	notifier := new(MockMessageNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("ChatRepository").Return(chatRepo).Once(),
		chatRepo.On("Add", ctx, mock.AnythingOfType("*chat.Message")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.AnythingOfType("*chat.Message")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendMessageCommandHandler(factory, notifier)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}

func TestSendMessageCommandHandler_Handle_OutsiderRejected(t *testing.T) {
	ctx := t.Context()
	pkg := pendingBooking(t, kernel.NewUUID())
	stranger := customerActor(t, kernel.NewUUID())

	cmd, err := commands.NewSendMessageCommand(stranger, pkg.ID(), "hello")
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	uow := new(MockChatUoW)
	notifier := new(MockMessageNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendMessageCommandHandler(factory, notifier)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	notifier.AssertNotCalled(t, "Notify", ctx, mock.Anything)
}

func TestSendMessageCommandHandler_Handle_BlankTextRejected(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	sender := customerActor(t, senderID)
	pkg := pendingBooking(t, senderID)

	cmd, err := commands.NewSendMessageCommand(sender, pkg.ID(), "   ")
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

	handler := commands.NewSendMessageCommandHandler(factory, new(MockMessageNotifier))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	chatRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func TestSendMessageCommandHandler_Handle_OverlongTextRejected(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	sender := customerActor(t, senderID)
	pkg := pendingBooking(t, senderID)

	cmd, err := commands.NewSendMessageCommand(sender, pkg.ID(), strings.Repeat("x", 1001))
	require.NoError(t, err)

	pkgRepo := new(MockPackageRepository)
	uow := new(MockChatUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(pkgRepo).Once(),
		pkgRepo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockChatUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSendMessageCommandHandler(factory, new(MockMessageNotifier))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
