package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/chat"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/model/profile"
	"courier/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, aggregate *parcel.Package) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, aggregate *parcel.Package) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Package, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetAllPending(ctx context.Context) ([]*parcel.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*parcel.Package, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetAllBySender(ctx context.Context, senderID kernel.UUID) ([]*parcel.Package, error) {
	args := m.Called(ctx, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetPendingMissingCoordinates(ctx context.Context, limit int) ([]*parcel.Package, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) Claim(ctx context.Context, packageID, driverID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, packageID, driverID, at)
	return args.Error(0)
}

func (m *MockPackageRepository) AdvanceStatus(
	ctx context.Context, packageID kernel.UUID, from, to parcel.Status, at time.Time,
) error {
	args := m.Called(ctx, packageID, from, to, at)
	return args.Error(0)
}

func (m *MockPackageRepository) CancelPending(ctx context.Context, packageID kernel.UUID) error {
	args := m.Called(ctx, packageID)
	return args.Error(0)
}

func (m *MockPackageRepository) AddEvent(ctx context.Context, event *parcel.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPackageRepository) GetEvents(ctx context.Context, packageID kernel.UUID) ([]*parcel.Event, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Event), args.Error(1)
}

type MockChatRepository struct{ mock.Mock }

func (m *MockChatRepository) Add(ctx context.Context, message *chat.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatRepository) GetByPackage(ctx context.Context, packageID kernel.UUID) ([]*chat.Message, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.Message), args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, packageID, readerID kernel.UUID) error {
	args := m.Called(ctx, packageID, readerID)
	return args.Error(0)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Add(ctx context.Context, aggregate *profile.Profile) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, aggregate *profile.Profile) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProfileRepository) Get(ctx context.Context, userID kernel.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

type MockPackageUoW struct{ mock.Mock }

func (m *MockPackageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPackageUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

type MockPackageUoWFactory struct{ mock.Mock }

func (m *MockPackageUoWFactory) Create() commands.PackageUoW {
	args := m.Called()
	return args.Get(0).(commands.PackageUoW)
}

type MockChatUoW struct{ mock.Mock }

func (m *MockChatUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChatUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChatUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChatUoW) ChatRepository() ports.ChatRepository {
	args := m.Called()
	return args.Get(0).(ports.ChatRepository)
}

func (m *MockChatUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

type MockChatUoWFactory struct{ mock.Mock }

func (m *MockChatUoWFactory) Create() commands.ChatUoW {
	args := m.Called()
	return args.Get(0).(commands.ChatUoW)
}

type MockProfileUoW struct{ mock.Mock }

func (m *MockProfileUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProfileUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProfileUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProfileUoW) ProfileRepository() ports.ProfileRepository {
	args := m.Called()
	return args.Get(0).(ports.ProfileRepository)
}

type MockProfileUoWFactory struct{ mock.Mock }

func (m *MockProfileUoWFactory) Create() commands.ProfileUoW {
	args := m.Called()
	return args.Get(0).(commands.ProfileUoW)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.GeoPoint), args.Error(1)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, trackingNumber string) (*ports.TrackingSnapshot, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TrackingSnapshot), args.Error(1)
}

func (m *MockTrackingCache) Set(ctx context.Context, snapshot *ports.TrackingSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockTrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	args := m.Called(ctx, trackingNumber)
	return args.Error(0)
}

type MockMessageNotifier struct{ mock.Mock }

func (m *MockMessageNotifier) Notify(ctx context.Context, message *chat.Message) {
	m.Called(ctx, message)
}
