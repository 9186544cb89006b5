// Package http exposes the booking, tracking, and driver operations over a
// REST API. The server coordinates between HTTP handlers and application use
// cases; authentication happens upstream, and the identity provider forwards
// the acting user in request headers.
package http

import (
	"log/slog"
	"net/http"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	CreateBooking    commands.CreateBookingCommandHandler
	EditBooking      commands.EditBookingCommandHandler
	CancelBooking    commands.CancelBookingCommandHandler
	AcceptJob        commands.AcceptJobCommandHandler
	AdvanceStatus    commands.AdvanceStatusCommandHandler
	SendMessage      commands.SendMessageCommandHandler
	MarkMessagesRead commands.MarkMessagesReadCommandHandler
	UpsertProfile    commands.UpsertProfileCommandHandler

	TrackPackage  queries.TrackPackageQueryHandler
	AvailableJobs queries.AvailableJobsQueryHandler
	NearbyJobs    queries.NearbyJobsQueryHandler
	MyJobs        queries.MyJobsQueryHandler
	MyBookings    queries.MyBookingsQueryHandler
	Messages      queries.MessagesQueryHandler
	RoutePlan     queries.RoutePlanQueryHandler
	MyProfile     queries.MyProfileQueryHandler
}

// Server implements the HTTP surface of the service.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/packages", s.CreateBooking)
	api.GET("/track/:number", s.TrackPackage)

	api.GET("/bookings", s.ListBookings)
	api.PATCH("/packages/:id", s.EditBooking)
	api.POST("/packages/:id/cancel", s.CancelBooking)

	api.GET("/jobs/available", s.AvailableJobs)
	api.GET("/jobs/nearby", s.NearbyJobs)
	api.GET("/jobs/mine", s.MyJobs)
	api.POST("/packages/:id/accept", s.AcceptJob)
	api.POST("/packages/:id/status", s.AdvanceStatus)
	api.GET("/route-plan", s.RoutePlan)

	api.GET("/packages/:id/messages", s.GetMessages)
	api.POST("/packages/:id/messages", s.PostMessage)

	api.GET("/profile", s.GetProfile)
	api.PUT("/profile", s.PutProfile)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateBooking handles POST /api/v1/packages. Authenticated customers book
// under their own id; anonymous callers must supply a guest contact email.
func (s *Server) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	params := req.toParams()

	a, authenticated, err := optionalActor(c)
	if err != nil {
		return writeError(c, err)
	}
	if authenticated {
		senderID := a.ID()
		params.SenderID = &senderID
		params.GuestEmail = ""
	}

	cmd, err := commands.NewCreateBookingCommand(params)
	if err != nil {
		return writeError(c, err)
	}

	pkg, err := s.handlers.CreateBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, packageFromDomain(pkg))
}

// TrackPackage handles GET /api/v1/track/:number. Public; the snapshot
// carries no addresses or contact details.
func (s *Server) TrackPackage(c echo.Context) error {
	query, err := queries.NewTrackPackageQuery(c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}

	snapshot, err := s.handlers.TrackPackage.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// ListBookings handles GET /api/v1/bookings.
func (s *Server) ListBookings(c echo.Context) error {
	a, err := requireCustomer(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewMyBookingsQuery(a.ID())
	if err != nil {
		return writeError(c, err)
	}

	bookings, err := s.handlers.MyBookings.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]bookingResponse, len(bookings))
	for i, booking := range bookings {
		response[i] = bookingFromQuery(booking)
	}

	return c.JSON(http.StatusOK, response)
}

// EditBooking handles PATCH /api/v1/packages/:id.
func (s *Server) EditBooking(c echo.Context) error {
	a, err := requireCustomer(c)
	if err != nil {
		return writeError(c, err)
	}

	packageID, err := packageIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	var req editBookingRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewEditBookingCommand(a, packageID, req.toParams())
	if err != nil {
		return writeError(c, err)
	}

	pkg, err := s.handlers.EditBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, packageFromDomain(pkg))
}

// CancelBooking handles POST /api/v1/packages/:id/cancel.
func (s *Server) CancelBooking(c echo.Context) error {
	a, err := requireCustomer(c)
	if err != nil {
		return writeError(c, err)
	}

	packageID, err := packageIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewCancelBookingCommand(a, packageID)
	if err != nil {
		return writeError(c, err)
	}

	pkg, err := s.handlers.CancelBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, packageFromDomain(pkg))
}

// AvailableJobs handles GET /api/v1/jobs/available.
func (s *Server) AvailableJobs(c echo.Context) error {
	if _, err := requireDriver(c); err != nil {
		return writeError(c, err)
	}

	jobs, err := s.handlers.AvailableJobs.Handle(c.Request().Context(), queries.NewAvailableJobsQuery())
	if err != nil {
		return writeError(c, err)
	}

	response := make([]jobResponse, len(jobs))
	for i, job := range jobs {
		response[i] = jobFromQuery(job)
	}

	return c.JSON(http.StatusOK, response)
}

// NearbyJobs handles GET /api/v1/jobs/nearby. Requires lat and lng query
// parameters; radius_km is optional and falls back to the default.
func (s *Server) NearbyJobs(c echo.Context) error {
	if _, err := requireDriver(c); err != nil {
		return writeError(c, err)
	}

	lat, err := floatQueryParam(c, "lat", true)
	if err != nil {
		return writeError(c, err)
	}
	lng, err := floatQueryParam(c, "lng", true)
	if err != nil {
		return writeError(c, err)
	}
	radiusKm, err := floatQueryParam(c, "radius_km", false)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewNearbyJobsQuery(lat, lng, radiusKm)
	if err != nil {
		return writeError(c, err)
	}

	jobs, err := s.handlers.NearbyJobs.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]nearbyJobResponse, len(jobs))
	for i, job := range jobs {
		response[i] = nearbyJobFromQuery(job)
	}

	return c.JSON(http.StatusOK, response)
}

// MyJobs handles GET /api/v1/jobs/mine.
func (s *Server) MyJobs(c echo.Context) error {
	a, err := requireDriver(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewMyJobsQuery(a.ID())
	if err != nil {
		return writeError(c, err)
	}

	jobs, err := s.handlers.MyJobs.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]myJobResponse, len(jobs))
	for i, job := range jobs {
		response[i] = myJobFromQuery(job)
	}

	return c.JSON(http.StatusOK, response)
}

// AcceptJob handles POST /api/v1/packages/:id/accept.
func (s *Server) AcceptJob(c echo.Context) error {
	a, err := requireDriver(c)
	if err != nil {
		return writeError(c, err)
	}

	packageID, err := packageIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewAcceptJobCommand(a, packageID)
	if err != nil {
		return writeError(c, err)
	}

	pkg, err := s.handlers.AcceptJob.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, packageFromDomain(pkg))
}

// AdvanceStatus handles POST /api/v1/packages/:id/status.
func (s *Server) AdvanceStatus(c echo.Context) error {
	a, err := requireDriver(c)
	if err != nil {
		return writeError(c, err)
	}

	packageID, err := packageIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	var req advanceStatusRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewAdvanceStatusCommand(a, packageID, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	pkg, err := s.handlers.AdvanceStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, packageFromDomain(pkg))
}

// RoutePlan handles GET /api/v1/route-plan. When lat and lng are supplied,
// leg distances are computed starting from that origin.
func (s *Server) RoutePlan(c echo.Context) error {
	a, err := requireDriver(c)
	if err != nil {
		return writeError(c, err)
	}

	origin, err := originQueryParam(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewRoutePlanQuery(a.ID(), origin)
	if err != nil {
		return writeError(c, err)
	}

	stops, err := s.handlers.RoutePlan.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]routeStopResponse, len(stops))
	for i, stop := range stops {
		response[i] = routeStopFromQuery(stop)
	}

	return c.JSON(http.StatusOK, response)
}

// GetMessages handles GET /api/v1/packages/:id/messages. Fetching the
// conversation flags the counterparty's messages as read.
func (s *Server) GetMessages(c echo.Context) error {
	a, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}

	packageID, err := packageIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewMessagesQuery(a, packageID)
	if err != nil {
		return writeError(c, err)
	}

	messages, err := s.handlers.Messages.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	// The read receipt is best-effort; a failure must not hide the
	// conversation from a participant who already passed authorization.
	if cmd, cmdErr := commands.NewMarkMessagesReadCommand(a, packageID); cmdErr == nil {
		if markErr := s.handlers.MarkMessagesRead.Handle(c.Request().Context(), cmd); markErr != nil {
			s.logger.Warn("marking messages read failed",
				"package_id", packageID.String(), "error", markErr)
		}
	}

	response := make([]messageResponse, len(messages))
	for i, message := range messages {
		response[i] = messageFromQuery(message)
	}

	return c.JSON(http.StatusOK, response)
}

// PostMessage handles POST /api/v1/packages/:id/messages.
func (s *Server) PostMessage(c echo.Context) error {
	a, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}

	packageID, err := packageIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	var req postMessageRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewSendMessageCommand(a, packageID, req.Text)
	if err != nil {
		return writeError(c, err)
	}

	message, err := s.handlers.SendMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, messageFromDomain(message))
}

// GetProfile handles GET /api/v1/profile.
func (s *Server) GetProfile(c echo.Context) error {
	a, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewMyProfileQuery(a.ID())
	if err != nil {
		return writeError(c, err)
	}

	stored, err := s.handlers.MyProfile.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, profileFromQuery(stored))
}

// PutProfile handles PUT /api/v1/profile. Creates the profile on first
// write, amends it afterwards.
func (s *Server) PutProfile(c echo.Context) error {
	a, err := requireActor(c)
	if err != nil {
		return writeError(c, err)
	}

	var req upsertProfileRequest
	if err = c.Bind(&req); err != nil {
		return writeError(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewUpsertProfileCommand(a, req.toParams())
	if err != nil {
		return writeError(c, err)
	}

	stored, err := s.handlers.UpsertProfile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, profileFromDomain(stored))
}

// packageIDParam parses the :id path parameter.
func packageIDParam(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("package id", err)
	}
	return id, nil
}
