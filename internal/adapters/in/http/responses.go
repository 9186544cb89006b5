package http

import (
	"time"

	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/chat"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/model/profile"
)

// packageResponse is the full booking view returned to its sender and to
// the assigned driver after a write operation.
type packageResponse struct {
	ID              string     `json:"id"`
	TrackingNumber  string     `json:"tracking_number"`
	Status          string     `json:"status"`
	RecipientName   string     `json:"recipient_name"`
	RecipientPhone  string     `json:"recipient_phone"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	PackageType     string     `json:"package_type"`
	WeightKg        *float64   `json:"weight_kg,omitempty"`
	DeclaredValue   *float64   `json:"declared_value,omitempty"`
	Dimensions      string     `json:"dimensions,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ServiceType     string     `json:"service_type"`
	Price           float64    `json:"price"`
	DriverID        *string    `json:"driver_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	AssignedAt      *time.Time `json:"assigned_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
}

func packageFromDomain(pkg *parcel.Package) packageResponse {
	var driverID *string
	if pkg.Driver() != nil {
		id := pkg.Driver().String()
		driverID = &id
	}

	return packageResponse{
		ID:              pkg.ID().String(),
		TrackingNumber:  pkg.TrackingNumber(),
		Status:          pkg.Status().String(),
		RecipientName:   pkg.Recipient().Name(),
		RecipientPhone:  pkg.Recipient().Phone(),
		PickupAddress:   pkg.PickupAddress().FullText(),
		DeliveryAddress: pkg.DeliveryAddress().FullText(),
		PackageType:     pkg.Details().PackageType(),
		WeightKg:        pkg.Details().WeightKg(),
		DeclaredValue:   pkg.Details().DeclaredValue(),
		Dimensions:      pkg.Details().Dimensions(),
		Notes:           pkg.Details().Notes(),
		ServiceType:     pkg.ServiceType().String(),
		Price:           pkg.Price(),
		DriverID:        driverID,
		CreatedAt:       pkg.CreatedAt(),
		AssignedAt:      pkg.AssignedAt(),
		DeliveredAt:     pkg.DeliveredAt(),
	}
}

type jobResponse struct {
	ID              string    `json:"id"`
	TrackingNumber  string    `json:"tracking_number"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	PackageType     string    `json:"package_type"`
	WeightKg        *float64  `json:"weight_kg,omitempty"`
	ServiceType     string    `json:"service_type"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
}

func jobFromQuery(job queries.AvailableJobsQueryResponse) jobResponse {
	return jobResponse{
		ID:              job.ID.String(),
		TrackingNumber:  job.TrackingNumber,
		PickupAddress:   job.PickupAddress,
		DeliveryAddress: job.DeliveryAddress,
		PackageType:     job.PackageType,
		WeightKg:        job.WeightKg,
		ServiceType:     job.ServiceType,
		Price:           job.Price,
		CreatedAt:       job.CreatedAt,
	}
}

type nearbyJobResponse struct {
	jobResponse

	DistanceKm float64 `json:"distance_km"`
}

func nearbyJobFromQuery(job queries.NearbyJobsQueryResponse) nearbyJobResponse {
	return nearbyJobResponse{
		jobResponse: jobFromQuery(job.AvailableJobsQueryResponse),
		DistanceKm:  job.DistanceKm,
	}
}

type myJobResponse struct {
	ID              string     `json:"id"`
	TrackingNumber  string     `json:"tracking_number"`
	Status          string     `json:"status"`
	RecipientName   string     `json:"recipient_name"`
	RecipientPhone  string     `json:"recipient_phone"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	PackageType     string     `json:"package_type"`
	WeightKg        *float64   `json:"weight_kg,omitempty"`
	ServiceType     string     `json:"service_type"`
	Price           float64    `json:"price"`
	AssignedAt      *time.Time `json:"assigned_at,omitempty"`
}

func myJobFromQuery(job queries.MyJobsQueryResponse) myJobResponse {
	return myJobResponse{
		ID:              job.ID.String(),
		TrackingNumber:  job.TrackingNumber,
		Status:          job.Status,
		RecipientName:   job.RecipientName,
		RecipientPhone:  job.RecipientPhone,
		PickupAddress:   job.PickupAddress,
		DeliveryAddress: job.DeliveryAddress,
		PackageType:     job.PackageType,
		WeightKg:        job.WeightKg,
		ServiceType:     job.ServiceType,
		Price:           job.Price,
		AssignedAt:      job.AssignedAt,
	}
}

type bookingResponse struct {
	ID              string     `json:"id"`
	TrackingNumber  string     `json:"tracking_number"`
	Status          string     `json:"status"`
	RecipientName   string     `json:"recipient_name"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	PackageType     string     `json:"package_type"`
	ServiceType     string     `json:"service_type"`
	Price           float64    `json:"price"`
	DriverID        *string    `json:"driver_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	AssignedAt      *time.Time `json:"assigned_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
}

func bookingFromQuery(booking queries.MyBookingsQueryResponse) bookingResponse {
	var driverID *string
	if booking.DriverID != nil {
		id := booking.DriverID.String()
		driverID = &id
	}

	return bookingResponse{
		ID:              booking.ID.String(),
		TrackingNumber:  booking.TrackingNumber,
		Status:          booking.Status,
		RecipientName:   booking.RecipientName,
		PickupAddress:   booking.PickupAddress,
		DeliveryAddress: booking.DeliveryAddress,
		PackageType:     booking.PackageType,
		ServiceType:     booking.ServiceType,
		Price:           booking.Price,
		DriverID:        driverID,
		CreatedAt:       booking.CreatedAt,
		AssignedAt:      booking.AssignedAt,
		DeliveredAt:     booking.DeliveredAt,
	}
}

type routeStopResponse struct {
	Sequence        int      `json:"sequence"`
	PackageID       string   `json:"package_id"`
	TrackingNumber  string   `json:"tracking_number"`
	Status          string   `json:"status"`
	PickupAddress   string   `json:"pickup_address"`
	DeliveryAddress string   `json:"delivery_address"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

func routeStopFromQuery(stop queries.RoutePlanQueryResponse) routeStopResponse {
	return routeStopResponse{
		Sequence:        stop.Sequence,
		PackageID:       stop.PackageID.String(),
		TrackingNumber:  stop.TrackingNumber,
		Status:          stop.Status,
		PickupAddress:   stop.PickupAddress,
		DeliveryAddress: stop.DeliveryAddress,
		DistanceKm:      stop.DistanceKm,
	}
}

type messageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Text       string    `json:"text"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func messageFromQuery(message queries.MessagesQueryResponse) messageResponse {
	return messageResponse{
		ID:         message.ID.String(),
		SenderID:   message.SenderID.String(),
		SenderName: message.SenderName,
		Text:       message.Text,
		IsRead:     message.IsRead,
		CreatedAt:  message.CreatedAt,
	}
}

type profileResponse struct {
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	DriverLicense string    `json:"driver_license,omitempty"`
	VehicleType   string    `json:"vehicle_type,omitempty"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func profileFromQuery(p *queries.MyProfileQueryResponse) profileResponse {
	return profileResponse{
		UserID:        p.UserID.String(),
		FullName:      p.FullName,
		Phone:         p.Phone,
		Role:          p.Role,
		DriverLicense: p.DriverLicense,
		VehicleType:   p.VehicleType,
		Available:     p.Available,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func profileFromDomain(p *profile.Profile) profileResponse {
	return profileResponse{
		UserID:        p.UserID().String(),
		FullName:      p.FullName(),
		Phone:         p.Phone(),
		Role:          p.Role().String(),
		DriverLicense: p.DriverLicense(),
		VehicleType:   p.VehicleType(),
		Available:     p.Available(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func messageFromDomain(message *chat.Message) messageResponse {
	return messageResponse{
		ID:        message.ID().String(),
		SenderID:  message.SenderID().String(),
		Text:      message.Text(),
		IsRead:    message.IsRead(),
		CreatedAt: message.CreatedAt(),
	}
}
