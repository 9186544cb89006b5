// Package packagerepo provides data transfer objects and mapping functions for
// package persistence. This package implements the repository pattern for the
// package aggregate and its audit events, handling the conversion between
// domain entities and database representations.
package packagerepo

import (
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// PackageDTO represents the database structure for persisting package
// aggregates. Statuses and service types are stored as their string form so
// the rows stay readable in psql and stable across enum reordering.
type PackageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber string    `gorm:"uniqueIndex;not null"`

	SenderID   *uuid.UUID `gorm:"type:uuid;index"`
	GuestEmail *string

	RecipientName  string
	RecipientPhone string

	PickupStreet   string
	PickupCity     string
	PickupPostcode string
	PickupLat      *float64
	PickupLng      *float64

	DeliveryStreet   string
	DeliveryCity     string
	DeliveryPostcode string
	DeliveryLat      *float64
	DeliveryLng      *float64

	PackageType   string
	WeightKg      *float64
	DeclaredValue *float64
	Dimensions    string
	Notes         string

	ServiceType string
	Price       float64

	Status   string     `gorm:"index"`
	DriverID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt   time.Time
	AssignedAt  *time.Time
	DeliveredAt *time.Time
}

// TableName specifies the database table name for package entities.
func (PackageDTO) TableName() string {
	return "packages"
}

// EventDTO represents one immutable audit trail entry for a package.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID   uuid.UUID `gorm:"type:uuid;index"`
	EventType   string
	Description string
	CreatedAt   time.Time
}

// TableName specifies the database table name for audit events.
func (EventDTO) TableName() string {
	return "package_events"
}

// fromDomain converts a package domain aggregate to its database
// representation, flattening value objects into columns.
func fromDomain(pkg *parcel.Package) PackageDTO {
	var senderID *uuid.UUID
	if id := pkg.Party().SenderID(); id != nil {
		raw := id.Bytes()
		senderID = &raw
	}

	var guestEmail *string
	if pkg.Party().IsGuest() {
		email := pkg.Party().GuestEmail()
		guestEmail = &email
	}

	var driverID *uuid.UUID
	if id := pkg.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var pickupLat, pickupLng *float64
	if point := pkg.PickupPoint(); point != nil {
		lat, lng := point.Latitude(), point.Longitude()
		pickupLat, pickupLng = &lat, &lng
	}

	var deliveryLat, deliveryLng *float64
	if point := pkg.DeliveryPoint(); point != nil {
		lat, lng := point.Latitude(), point.Longitude()
		deliveryLat, deliveryLng = &lat, &lng
	}

	return PackageDTO{
		ID:               pkg.ID().Bytes(),
		TrackingNumber:   pkg.TrackingNumber(),
		SenderID:         senderID,
		GuestEmail:       guestEmail,
		RecipientName:    pkg.Recipient().Name(),
		RecipientPhone:   pkg.Recipient().Phone(),
		PickupStreet:     pkg.PickupAddress().Street(),
		PickupCity:       pkg.PickupAddress().City(),
		PickupPostcode:   pkg.PickupAddress().Postcode(),
		PickupLat:        pickupLat,
		PickupLng:        pickupLng,
		DeliveryStreet:   pkg.DeliveryAddress().Street(),
		DeliveryCity:     pkg.DeliveryAddress().City(),
		DeliveryPostcode: pkg.DeliveryAddress().Postcode(),
		DeliveryLat:      deliveryLat,
		DeliveryLng:      deliveryLng,
		PackageType:      pkg.Details().PackageType(),
		WeightKg:         pkg.Details().WeightKg(),
		DeclaredValue:    pkg.Details().DeclaredValue(),
		Dimensions:       pkg.Details().Dimensions(),
		Notes:            pkg.Details().Notes(),
		ServiceType:      pkg.ServiceType().String(),
		Price:            pkg.Price(),
		Status:           pkg.Status().String(),
		DriverID:         driverID,
		CreatedAt:        pkg.CreatedAt(),
		AssignedAt:       pkg.AssignedAt(),
		DeliveredAt:      pkg.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a package domain aggregate.
// Reconstructs the complete aggregate including party, addresses, and
// lifecycle state using RestorePackage.
func toDomain(dto PackageDTO) (*parcel.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var party parcel.Party
	if dto.SenderID != nil {
		senderID, idErr := kernel.UUIDFromBytes((*dto.SenderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		party, err = parcel.NewRegisteredParty(senderID)
	} else {
		var email string
		if dto.GuestEmail != nil {
			email = *dto.GuestEmail
		}
		party, err = parcel.NewGuestParty(email)
	}
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, idErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		driverID = &dID
	}

	recipient, err := parcel.NewRecipient(dto.RecipientName, dto.RecipientPhone)
	if err != nil {
		return nil, err
	}

	pickup, err := parcel.NewAddress(dto.PickupStreet, dto.PickupCity, dto.PickupPostcode)
	if err != nil {
		return nil, err
	}

	delivery, err := parcel.NewAddress(dto.DeliveryStreet, dto.DeliveryCity, dto.DeliveryPostcode)
	if err != nil {
		return nil, err
	}

	pickupPoint, err := pointFromColumns(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}

	deliveryPoint, err := pointFromColumns(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(dto.PackageType, dto.WeightKg, dto.DeclaredValue, dto.Dimensions, dto.Notes)
	if err != nil {
		return nil, err
	}

	serviceType, err := parcel.ServiceTypeFromString(dto.ServiceType)
	if err != nil {
		return nil, err
	}

	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestorePackage(parcel.RestorePackageParams{
		ID:              id,
		TrackingNumber:  dto.TrackingNumber,
		Party:           party,
		DriverID:        driverID,
		Recipient:       recipient,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		PickupPoint:     pickupPoint,
		DeliveryPoint:   deliveryPoint,
		Details:         details,
		ServiceType:     serviceType,
		Price:           dto.Price,
		Status:          status,
		CreatedAt:       dto.CreatedAt,
		AssignedAt:      dto.AssignedAt,
		DeliveredAt:     dto.DeliveredAt,
	})
}

// pointFromColumns rebuilds a GeoPoint from a nullable coordinate pair.
func pointFromColumns(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// eventFromDomain converts an audit event to its database representation.
func eventFromDomain(event *parcel.Event) EventDTO {
	return EventDTO{
		ID:          event.ID().Bytes(),
		PackageID:   event.PackageID().Bytes(),
		EventType:   event.Type().String(),
		Description: event.Description(),
		CreatedAt:   event.CreatedAt(),
	}
}

// eventToDomain converts a database DTO to an audit event entity.
func eventToDomain(dto EventDTO) (*parcel.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	eventType, err := parcel.StatusFromString(dto.EventType)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreEvent(id, packageID, eventType, dto.Description, dto.CreatedAt)
}
