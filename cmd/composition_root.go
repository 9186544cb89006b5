package cmd

import (
	"log/slog"
	"strconv"
	"time"

	httpserver "courier/internal/adapters/in/http"
	"courier/internal/adapters/out/geo"
	"courier/internal/adapters/out/notify"
	"courier/internal/adapters/out/postgres"
	"courier/internal/adapters/out/redis/trackingcache"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All dependencies
// are created once and shared; handlers themselves are cheap values.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	geocoder *geo.NominatimGeocoder
	cache    *trackingcache.RedisTrackingCache
	notifier *notify.MessageHub
	logger   *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	ttl := trackingcache.DefaultTTL
	if minutes, err := strconv.Atoi(config.TrackingCacheTTLMin); err == nil && minutes > 0 {
		ttl = time.Duration(minutes) * time.Minute
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		geocoder:   geo.NewNominatimGeocoder(config.NominatimBaseURL),
		cache:      trackingcache.NewRedisTrackingCache(redisClient, ttl),
		notifier:   notify.NewMessageHub(logger),
		logger:     logger,
	}
}

// MessageHub exposes the notifier for transports that subscribe to
// conversations.
func (c *CompositionRoot) MessageHub() *notify.MessageHub {
	return c.notifier
}

func (c *CompositionRoot) packageUoWFactory() commands.PackageUoWFactory {
	return FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) chatUoWFactory() commands.ChatUoWFactory {
	return FuncChatUoWFactory(func() commands.ChatUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) profileUoWFactory() commands.ProfileUoWFactory {
	return FuncProfileUoWFactory(func() commands.ProfileUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	return commands.NewCreateBookingCommandHandler(c.packageUoWFactory(), c.geocoder, c.logger)
}

func (c *CompositionRoot) CreateEditBookingCommandHandler() commands.EditBookingCommandHandler {
	return commands.NewEditBookingCommandHandler(c.packageUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateCancelBookingCommandHandler() commands.CancelBookingCommandHandler {
	return commands.NewCancelBookingCommandHandler(c.packageUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateAcceptJobCommandHandler() commands.AcceptJobCommandHandler {
	return commands.NewAcceptJobCommandHandler(c.packageUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(c.packageUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.chatUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateMarkMessagesReadCommandHandler() commands.MarkMessagesReadCommandHandler {
	return commands.NewMarkMessagesReadCommandHandler(c.chatUoWFactory())
}

func (c *CompositionRoot) CreateUpsertProfileCommandHandler() commands.UpsertProfileCommandHandler {
	return commands.NewUpsertProfileCommandHandler(c.profileUoWFactory())
}

func (c *CompositionRoot) CreateBackfillCoordinatesCommandHandler() commands.BackfillCoordinatesCommandHandler {
	return commands.NewBackfillCoordinatesCommandHandler(c.packageUoWFactory(), c.geocoder, c.logger)
}

func (c *CompositionRoot) CreateTrackPackageQueryHandler() queries.TrackPackageQueryHandler {
	return queries.NewTrackPackageQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateAvailableJobsQueryHandler() queries.AvailableJobsQueryHandler {
	return queries.NewAvailableJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateNearbyJobsQueryHandler() queries.NearbyJobsQueryHandler {
	return queries.NewNearbyJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMyJobsQueryHandler() queries.MyJobsQueryHandler {
	return queries.NewMyJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMyBookingsQueryHandler() queries.MyBookingsQueryHandler {
	return queries.NewMyBookingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMessagesQueryHandler() queries.MessagesQueryHandler {
	return queries.NewMessagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRoutePlanQueryHandler() queries.RoutePlanQueryHandler {
	return queries.NewRoutePlanQueryHandler(c.gormDB, services.NewRoutePlanner())
}

func (c *CompositionRoot) CreateMyProfileQueryHandler() queries.MyProfileQueryHandler {
	return queries.NewMyProfileQueryHandler(c.gormDB)
}

// CreateHTTPHandlers bundles every handler the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpserver.Handlers {
	return httpserver.Handlers{
		CreateBooking:    c.CreateCreateBookingCommandHandler(),
		EditBooking:      c.CreateEditBookingCommandHandler(),
		CancelBooking:    c.CreateCancelBookingCommandHandler(),
		AcceptJob:        c.CreateAcceptJobCommandHandler(),
		AdvanceStatus:    c.CreateAdvanceStatusCommandHandler(),
		SendMessage:      c.CreateSendMessageCommandHandler(),
		MarkMessagesRead: c.CreateMarkMessagesReadCommandHandler(),
		UpsertProfile:    c.CreateUpsertProfileCommandHandler(),

		TrackPackage:  c.CreateTrackPackageQueryHandler(),
		AvailableJobs: c.CreateAvailableJobsQueryHandler(),
		NearbyJobs:    c.CreateNearbyJobsQueryHandler(),
		MyJobs:        c.CreateMyJobsQueryHandler(),
		MyBookings:    c.CreateMyBookingsQueryHandler(),
		Messages:      c.CreateMessagesQueryHandler(),
		RoutePlan:     c.CreateRoutePlanQueryHandler(),
		MyProfile:     c.CreateMyProfileQueryHandler(),
	}
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncChatUoWFactory func() commands.ChatUoW

func (f FuncChatUoWFactory) Create() commands.ChatUoW {
	return f()
}

type FuncProfileUoWFactory func() commands.ProfileUoW

func (f FuncProfileUoWFactory) Create() commands.ProfileUoW {
	return f()
}
