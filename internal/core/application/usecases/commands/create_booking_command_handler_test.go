package commands_test

import (
	"errors"
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateBookingCommand(validBookingParams(&senderID))
	require.NoError(t, err)

	pickupPoint, _ := kernel.NewGeoPoint(51.52, -0.15)
	deliveryPoint, _ := kernel.NewGeoPoint(51.50, -0.12)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, "1 Baker Street, London, NW1 6XE").Return(&pickupPoint, nil).Once()
	geocoder.On("Geocode", ctx, "10 Downing Street, London, SW1A 2AA").Return(&deliveryPoint, nil).Once()

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateBookingCommandHandler(factory, geocoder, discardLogger())
	pkg, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, pkg)
	assert.Equal(t, parcel.Pending, pkg.Status())
	assert.InDelta(t, 12.99, pkg.Price(), 1e-9)
	assert.NotEmpty(t, pkg.TrackingNumber())
	assert.NotNil(t, pkg.PickupPoint())
	assert.NotNil(t, pkg.DeliveryPoint())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	geocoder.AssertExpectations(t)
}

func TestCreateBookingCommandHandler_Handle_GeocodingFailureDoesNotBlock(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateBookingCommand(validBookingParams(&senderID))
	require.NoError(t, err)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, mock.AnythingOfType("string")).
		Return(nil, errors.New("geocoder down")).Twice()

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateBookingCommandHandler(factory, geocoder, discardLogger())
	pkg, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, pkg.PickupPoint())
	assert.Nil(t, pkg.DeliveryPoint())
	repo.AssertExpectations(t)
}

func TestCreateBookingCommandHandler_Handle_InvalidPhoneStopsBeforeStore(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	params := validBookingParams(&senderID)
	params.RecipientPhone = "12345"
	cmd, err := commands.NewCreateBookingCommand(params)
	require.NoError(t, err)

	geocoder := new(MockGeocoder)
	factory := new(MockPackageUoWFactory)

	handler := commands.NewCreateBookingCommandHandler(factory, geocoder, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipient phone")
	factory.AssertNotCalled(t, "Create")
	geocoder.AssertNotCalled(t, "Geocode")
}

func TestCreateBookingCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	ctx := t.Context()

	factory := new(MockPackageUoWFactory)
	handler := commands.NewCreateBookingCommandHandler(factory, new(MockGeocoder), discardLogger())

	_, err := handler.Handle(ctx, commands.CreateBookingCommand{})

	require.ErrorIs(t, err, commands.ErrCreateBookingCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateBookingCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateBookingCommand(validBookingParams(&senderID))
	require.NoError(t, err)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", ctx, mock.AnythingOfType("string")).Return(nil, nil).Twice()

	repo := new(MockPackageRepository)
	uow := new(MockPackageUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*parcel.Package")).Return(errors.New("insert error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPackageUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateBookingCommandHandler(factory, geocoder, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
	uow.AssertNotCalled(t, "Commit", ctx)
}
