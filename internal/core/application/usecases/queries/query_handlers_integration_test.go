package queries_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"courier/internal/adapters/out/postgres/chatrepo"
	"courier/internal/adapters/out/postgres/packagerepo"
	"courier/internal/adapters/out/postgres/profilerepo"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/chat"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/model/profile"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// memoryTrackingCache is an in-process TrackingCache for handler tests.
type memoryTrackingCache struct {
	mu        sync.Mutex
	snapshots map[string]*ports.TrackingSnapshot
}

func newMemoryTrackingCache() *memoryTrackingCache {
	return &memoryTrackingCache{snapshots: make(map[string]*ports.TrackingSnapshot)}
}

func (c *memoryTrackingCache) Get(_ context.Context, trackingNumber string) (*ports.TrackingSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshots[trackingNumber], nil
}

func (c *memoryTrackingCache) Set(_ context.Context, snapshot *ports.TrackingSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshot.TrackingNumber] = snapshot
	return nil
}

func (c *memoryTrackingCache) Invalidate(_ context.Context, trackingNumber string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, trackingNumber)
	return nil
}

// QueryHandlersIntegrationTestSuite runs the read-side handlers against a
// PostgreSQL container seeded through the repositories.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container   *pgcontainer.PostgresContainer
	db          *gorm.DB
	packageRepo *packagerepo.GormPackageRepository
	chatRepo    *chatrepo.GormChatRepository
	profileRepo *profilerepo.GormProfileRepository
	cache       *memoryTrackingCache
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&packagerepo.PackageDTO{},
		&packagerepo.EventDTO{},
		&chatrepo.MessageDTO{},
		&profilerepo.ProfileDTO{},
	))
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE packages, package_events, chat_messages, profiles").Error)
	suite.packageRepo = packagerepo.NewGormPackageRepository(suite.db)
	suite.chatRepo = chatrepo.NewGormChatRepository(suite.db)
	suite.profileRepo = profilerepo.NewGormProfileRepository(suite.db)
	suite.cache = newMemoryTrackingCache()
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestTrackPackage_MissReadsDatabaseAndFillsCache() {
	ctx := context.Background()

	booking := suite.seedBooking(kernel.NewUUID(), "1 Baker Street", "London", "NW1 6XE", nil)
	event, err := parcel.NewEvent(booking.ID(), parcel.Assigned, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.packageRepo.AddEvent(ctx, event))

	handler := queries.NewTrackPackageQueryHandler(suite.db, suite.cache, discardLogger())
	query, err := queries.NewTrackPackageQuery(booking.TrackingNumber())
	suite.Require().NoError(err)

	snapshot, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(booking.TrackingNumber(), snapshot.TrackingNumber)
	suite.Equal("pending", snapshot.Status)
	suite.Equal("Ada Lovelace", snapshot.RecipientName)
	suite.Equal("London", snapshot.PickupCity)
	suite.Equal("Manchester", snapshot.DeliveryCity)
	suite.Require().Len(snapshot.Events, 1)
	suite.Equal("Package assigned to driver", snapshot.Events[0].Description)

	// The projection landed in the cache.
	cached, err := suite.cache.Get(ctx, booking.TrackingNumber())
	suite.Require().NoError(err)
	suite.Require().NotNil(cached)
	suite.Equal(snapshot.TrackingNumber, cached.TrackingNumber)
}

func (suite *QueryHandlersIntegrationTestSuite) TestTrackPackage_HitSkipsDatabase() {
	ctx := context.Background()

	snapshot := &ports.TrackingSnapshot{
		TrackingNumber: "PKG-1735689600-a1b2c3d4",
		Status:         "in_transit",
		RecipientName:  "Cached Name",
		CreatedAt:      time.Now().UTC(),
	}
	suite.Require().NoError(suite.cache.Set(ctx, snapshot))

	handler := queries.NewTrackPackageQueryHandler(suite.db, suite.cache, discardLogger())
	query, err := queries.NewTrackPackageQuery("PKG-1735689600-a1b2c3d4")
	suite.Require().NoError(err)

	// No matching row exists; only the cache can satisfy this.
	got, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("in_transit", got.Status)
	suite.Equal("Cached Name", got.RecipientName)
}

func (suite *QueryHandlersIntegrationTestSuite) TestTrackPackage_UnknownNumber_ReturnsNotFound() {
	handler := queries.NewTrackPackageQueryHandler(suite.db, suite.cache, discardLogger())
	query, err := queries.NewTrackPackageQuery("PKG-0-deadbeef")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestAvailableJobs_ListsOnlyUnclaimedPending() {
	ctx := context.Background()

	open := suite.seedBooking(kernel.NewUUID(), "1 Baker Street", "London", "NW1 6XE", nil)
	claimed := suite.seedBooking(kernel.NewUUID(), "2 High Street", "Leeds", "LS1 4AP", nil)
	suite.Require().NoError(suite.packageRepo.Claim(ctx, claimed.ID(), kernel.NewUUID(), time.Now().UTC()))

	handler := queries.NewAvailableJobsQueryHandler(suite.db)
	jobs, err := handler.Handle(ctx, queries.NewAvailableJobsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(jobs, 1)
	suite.True(jobs[0].ID.IsEqual(open.ID()))
	suite.Equal("1 Baker Street, London, NW1 6XE", jobs[0].PickupAddress)
	suite.InDelta(4.99, jobs[0].Price, 0.001)
}

func (suite *QueryHandlersIntegrationTestSuite) TestNearbyJobs_RanksByDistanceAndAppliesRadius() {
	ctx := context.Background()

	london, err := kernel.NewGeoPoint(51.5074, -0.1278)
	suite.Require().NoError(err)
	croydon, err := kernel.NewGeoPoint(51.3762, -0.0982)
	suite.Require().NoError(err)
	manchester, err := kernel.NewGeoPoint(53.4808, -2.2426)
	suite.Require().NoError(err)

	near := suite.seedBooking(kernel.NewUUID(), "1 Baker Street", "London", "NW1 6XE", &london)
	mid := suite.seedBooking(kernel.NewUUID(), "3 George Street", "Croydon", "CR0 1PB", &croydon)
	suite.seedBooking(kernel.NewUUID(), "10 Deansgate", "Manchester", "M3 4LY", &manchester)
	suite.seedBooking(kernel.NewUUID(), "4 Ungeocoded Lane", "Bristol", "BS1 4DJ", nil)

	handler := queries.NewNearbyJobsQueryHandler(suite.db)
	query, err := queries.NewNearbyJobsQuery(51.5074, -0.1278, 50)
	suite.Require().NoError(err)

	jobs, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	// Manchester is beyond 50km, the ungeocoded booking has no distance.
	suite.Require().Len(jobs, 2)
	suite.True(jobs[0].ID.IsEqual(near.ID()))
	suite.True(jobs[1].ID.IsEqual(mid.ID()))
	suite.Less(jobs[0].DistanceKm, jobs[1].DistanceKm)
}

func (suite *QueryHandlersIntegrationTestSuite) TestMyJobs_ReturnsDriversActiveJobsInClaimOrder() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	first := suite.seedBooking(kernel.NewUUID(), "1 Baker Street", "London", "NW1 6XE", nil)
	second := suite.seedBooking(kernel.NewUUID(), "2 High Street", "Leeds", "LS1 4AP", nil)
	suite.seedBooking(kernel.NewUUID(), "3 George Street", "Croydon", "CR0 1PB", nil)

	base := time.Now().UTC()
	suite.Require().NoError(suite.packageRepo.Claim(ctx, first.ID(), driverID, base))
	suite.Require().NoError(suite.packageRepo.Claim(ctx, second.ID(), driverID, base.Add(time.Minute)))

	handler := queries.NewMyJobsQueryHandler(suite.db)
	query, err := queries.NewMyJobsQuery(driverID)
	suite.Require().NoError(err)

	jobs, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(jobs, 2)
	suite.True(jobs[0].ID.IsEqual(first.ID()))
	suite.True(jobs[1].ID.IsEqual(second.ID()))
	suite.Equal("assigned", jobs[0].Status)
	suite.Equal("07123456789", jobs[0].RecipientPhone)
}

func (suite *QueryHandlersIntegrationTestSuite) TestMyBookings_NewestFirstAcrossAllStates() {
	ctx := context.Background()
	senderID := kernel.NewUUID()

	older := suite.seedBookingAt(senderID, time.Now().UTC().Add(-time.Hour))
	newer := suite.seedBookingAt(senderID, time.Now().UTC())
	suite.Require().NoError(suite.packageRepo.CancelPending(ctx, older.ID()))

	handler := queries.NewMyBookingsQueryHandler(suite.db)
	query, err := queries.NewMyBookingsQuery(senderID)
	suite.Require().NoError(err)

	bookings, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(bookings, 2)
	suite.True(bookings[0].ID.IsEqual(newer.ID()))
	suite.True(bookings[1].ID.IsEqual(older.ID()))
	suite.Equal("cancelled", bookings[1].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestMessages_ParticipantsOnly() {
	ctx := context.Background()
	senderID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	booking := suite.seedBooking(senderID, "1 Baker Street", "London", "NW1 6XE", nil)
	suite.Require().NoError(suite.packageRepo.Claim(ctx, booking.ID(), driverID, time.Now().UTC()))

	message, err := chat.NewMessage(booking.ID(), senderID, "where is my parcel?", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.chatRepo.Add(ctx, message))

	senderProfile, err := profile.NewProfile(senderID, "Grace Hopper", "07000000001", actor.Customer, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.profileRepo.Add(ctx, senderProfile))

	handler := queries.NewMessagesQueryHandler(suite.db)

	sender, err := actor.NewActor(senderID, actor.Customer)
	suite.Require().NoError(err)
	query, err := queries.NewMessagesQuery(sender, booking.ID())
	suite.Require().NoError(err)

	messages, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.Equal("where is my parcel?", messages[0].Text)
	suite.Equal("Grace Hopper", messages[0].SenderName)

	driver, err := actor.NewActor(driverID, actor.Driver)
	suite.Require().NoError(err)
	query, err = queries.NewMessagesQuery(driver, booking.ID())
	suite.Require().NoError(err)

	messages, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(messages, 1)

	stranger, err := actor.NewActor(kernel.NewUUID(), actor.Customer)
	suite.Require().NoError(err)
	query, err = queries.NewMessagesQuery(stranger, booking.ID())
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrNotAuthorized)
}

func (suite *QueryHandlersIntegrationTestSuite) TestMessages_UnknownPackage_ReturnsNotFound() {
	requester, err := actor.NewActor(kernel.NewUUID(), actor.Customer)
	suite.Require().NoError(err)
	query, err := queries.NewMessagesQuery(requester, kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewMessagesQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestRoutePlan_SequencesStopsWithDistances() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	london, err := kernel.NewGeoPoint(51.5074, -0.1278)
	suite.Require().NoError(err)
	manchester, err := kernel.NewGeoPoint(53.4808, -2.2426)
	suite.Require().NoError(err)

	first := suite.seedBooking(kernel.NewUUID(), "1 Baker Street", "London", "NW1 6XE", &london)
	second := suite.seedBooking(kernel.NewUUID(), "10 Deansgate", "Manchester", "M3 4LY", &manchester)

	base := time.Now().UTC()
	suite.Require().NoError(suite.packageRepo.Claim(ctx, first.ID(), driverID, base))
	suite.Require().NoError(suite.packageRepo.Claim(ctx, second.ID(), driverID, base.Add(time.Minute)))

	handler := queries.NewRoutePlanQueryHandler(suite.db, services.NewRoutePlanner())
	origin, err := kernel.NewGeoPoint(51.5, -0.12)
	suite.Require().NoError(err)
	query, err := queries.NewRoutePlanQuery(driverID, &origin)
	suite.Require().NoError(err)

	plan, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(plan, 2)
	suite.Equal(1, plan[0].Sequence)
	suite.Equal(2, plan[1].Sequence)
	suite.True(plan[0].PackageID.IsEqual(first.ID()))
	suite.True(plan[1].PackageID.IsEqual(second.ID()))
	suite.Require().NotNil(plan[0].DistanceKm)
	suite.Require().NotNil(plan[1].DistanceKm)
	suite.InDelta(262, *plan[1].DistanceKm, 10)
}

func (suite *QueryHandlersIntegrationTestSuite) TestMyProfile_ReturnsStoredProfile() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	stored, err := profile.NewProfile(driverID, "Grace Hopper", "07000000001", actor.Driver, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(stored.SetVehicle("HOPPE901234GR9AB", "cargo bike", time.Now().UTC()))
	suite.Require().NoError(stored.SetAvailability(true, time.Now().UTC()))
	suite.Require().NoError(suite.profileRepo.Add(ctx, stored))

	handler := queries.NewMyProfileQueryHandler(suite.db)
	query, err := queries.NewMyProfileQuery(driverID)
	suite.Require().NoError(err)

	got, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(got.UserID.IsEqual(driverID))
	suite.Equal("Grace Hopper", got.FullName)
	suite.Equal("driver", got.Role)
	suite.Equal("cargo bike", got.VehicleType)
	suite.True(got.Available)
}

func (suite *QueryHandlersIntegrationTestSuite) TestMyProfile_MissingProfile_ReturnsNotFound() {
	handler := queries.NewMyProfileQueryHandler(suite.db)
	query, err := queries.NewMyProfileQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// seedBooking persists a fresh pending booking with the given pickup address
// and optional pickup coordinates.
func (suite *QueryHandlersIntegrationTestSuite) seedBooking(
	senderID kernel.UUID,
	pickupStreet, pickupCity, pickupPostcode string,
	pickupPoint *kernel.GeoPoint,
) *parcel.Package {
	party, err := parcel.NewRegisteredParty(senderID)
	suite.Require().NoError(err)

	recipient, err := parcel.NewRecipient("Ada Lovelace", "07123456789")
	suite.Require().NoError(err)

	pickup, err := parcel.NewAddress(pickupStreet, pickupCity, pickupPostcode)
	suite.Require().NoError(err)

	delivery, err := parcel.NewAddress("10 Deansgate", "Manchester", "M3 4LY")
	suite.Require().NoError(err)

	details, err := parcel.NewDetails("Books", nil, nil, "", "")
	suite.Require().NoError(err)

	booking, err := parcel.NewPackage(
		party, recipient, pickup, delivery, details, parcel.Standard, time.Now().UTC())
	suite.Require().NoError(err)

	if pickupPoint != nil {
		suite.Require().NoError(booking.SetPickupPoint(*pickupPoint))
	}

	suite.Require().NoError(suite.packageRepo.Add(context.Background(), booking))
	return booking
}

func (suite *QueryHandlersIntegrationTestSuite) seedBookingAt(
	senderID kernel.UUID,
	createdAt time.Time,
) *parcel.Package {
	party, err := parcel.NewRegisteredParty(senderID)
	suite.Require().NoError(err)

	recipient, err := parcel.NewRecipient("Ada Lovelace", "07123456789")
	suite.Require().NoError(err)

	pickup, err := parcel.NewAddress("1 Baker Street", "London", "NW1 6XE")
	suite.Require().NoError(err)

	delivery, err := parcel.NewAddress("10 Deansgate", "Manchester", "M3 4LY")
	suite.Require().NoError(err)

	details, err := parcel.NewDetails("Books", nil, nil, "", "")
	suite.Require().NoError(err)

	booking, err := parcel.NewPackage(
		party, recipient, pickup, delivery, details, parcel.Standard, createdAt)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.packageRepo.Add(context.Background(), booking))
	return booking
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
