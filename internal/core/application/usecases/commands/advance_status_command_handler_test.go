package commands_test

import (
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driver := driverActor(t)
	pkg := pendingBooking(t, kernel.NewUUID())
	require.NoError(t, pkg.Assign(driver.ID(), time.Now()))

	cmd, err := commands.NewAdvanceStatusCommand(driver, pkg.ID(), "picked_up")
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	cache := new(MockTrackingCache)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		repo.On("AdvanceStatus", ctx, pkg.ID(), parcel.Assigned, parcel.PickedUp, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		repo.On("AddEvent", ctx, mock.AnythingOfType("*parcel.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Invalidate", ctx, pkg.TrackingNumber()).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceStatusCommandHandler(factory, cache, discardLogger())
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.PickedUp, got.Status())

	event := repo.Calls[2].Arguments[1].(*parcel.Event)
	assert.Equal(t, parcel.PickedUp, event.Type())
	assert.Equal(t, "Package picked up", event.Description())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAdvanceStatusCommandHandler_Handle_DeliveredSetsTimestamp(t *testing.T) {
	ctx := t.Context()
	driver := driverActor(t)
	pkg := pendingBooking(t, kernel.NewUUID())
	require.NoError(t, pkg.Assign(driver.ID(), time.Now()))
	require.NoError(t, pkg.Advance(driver.ID(), parcel.PickedUp, time.Now()))
	require.NoError(t, pkg.Advance(driver.ID(), parcel.InTransit, time.Now()))

	cmd, err := commands.NewAdvanceStatusCommand(driver, pkg.ID(), "delivered")
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)
	cache := new(MockTrackingCache)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		repo.On("AdvanceStatus", ctx, pkg.ID(), parcel.InTransit, parcel.Delivered, mock.AnythingOfType("time.Time")).
			Return(nil).Once(),
		repo.On("AddEvent", ctx, mock.AnythingOfType("*parcel.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Invalidate", ctx, pkg.TrackingNumber()).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceStatusCommandHandler(factory, cache, discardLogger())
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.Delivered, got.Status())
	assert.NotNil(t, got.DeliveredAt())
}

func TestAdvanceStatusCommandHandler_Handle_WrongDriver(t *testing.T) {
	ctx := t.Context()
	pkg := pendingBooking(t, kernel.NewUUID())
	require.NoError(t, pkg.Assign(kernel.NewUUID(), time.Now()))

	otherDriver := driverActor(t)
	cmd, err := commands.NewAdvanceStatusCommand(otherDriver, pkg.ID(), "picked_up")
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceStatusCommandHandler(factory, new(MockTrackingCache), discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	repo.AssertNotCalled(t, "AdvanceStatus", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvanceStatusCommandHandler_Handle_ConcurrentAdvanceLoses(t *testing.T) {
	ctx := t.Context()
	driver := driverActor(t)
	pkg := pendingBooking(t, kernel.NewUUID())
	require.NoError(t, pkg.Assign(driver.ID(), time.Now()))

	cmd, err := commands.NewAdvanceStatusCommand(driver, pkg.ID(), "picked_up")
	require.NoError(t, err)

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Get", ctx, pkg.ID()).Return(pkg, nil).Once(),
		repo.On("AdvanceStatus", ctx, pkg.ID(), parcel.Assigned, parcel.PickedUp, mock.AnythingOfType("time.Time")).
			Return(errs.NewInvalidTransitionError("picked_up", "picked_up", "status changed concurrently")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceStatusCommandHandler(factory, new(MockTrackingCache), discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	repo.AssertNotCalled(t, "AddEvent", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewAdvanceStatusCommand_RejectsUnknownStatus(t *testing.T) {
	driver := driverActor(t)

	_, err := commands.NewAdvanceStatusCommand(driver, kernel.NewUUID(), "lost")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
