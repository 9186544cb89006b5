package queries

import (
	"database/sql"
	"fmt"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// packageColumns is the shared projection of the packages table used by the
// read-side queries. Column order is irrelevant because rows are scanned into
// packageRow by name.
const packageColumns = `
	id, tracking_number, sender_id, guest_email,
	recipient_name, recipient_phone,
	pickup_street, pickup_city, pickup_postcode, pickup_lat, pickup_lng,
	delivery_street, delivery_city, delivery_postcode, delivery_lat, delivery_lng,
	package_type, weight_kg, declared_value, dimensions, notes,
	service_type, price, status, driver_id,
	created_at, assigned_at, delivered_at`

// packageRow mirrors one row of the packages table with nullable columns
// mapped to sql null types.
type packageRow struct {
	ID               uuid.UUID
	TrackingNumber   string
	SenderID         uuid.NullUUID
	GuestEmail       sql.NullString
	RecipientName    string
	RecipientPhone   string
	PickupStreet     string
	PickupCity       string
	PickupPostcode   string
	PickupLat        sql.NullFloat64
	PickupLng        sql.NullFloat64
	DeliveryStreet   string
	DeliveryCity     string
	DeliveryPostcode string
	DeliveryLat      sql.NullFloat64
	DeliveryLng      sql.NullFloat64
	PackageType      string
	WeightKg         sql.NullFloat64
	DeclaredValue    sql.NullFloat64
	Dimensions       sql.NullString
	Notes            sql.NullString
	ServiceType      string
	Price            float64
	Status           string
	DriverID         uuid.NullUUID
	CreatedAt        time.Time
	AssignedAt       sql.NullTime
	DeliveredAt      sql.NullTime
}

// fullAddress renders an address the same way the domain model does, so query
// responses and aggregate views stay textually consistent.
func fullAddress(street, city, postcode string) string {
	return fmt.Sprintf("%s, %s, %s", street, city, postcode)
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullableUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// geoPoint converts a nullable coordinate pair into a GeoPoint, or nil when
// either component is missing.
func geoPoint(lat, lng sql.NullFloat64) (*kernel.GeoPoint, error) {
	if !lat.Valid || !lng.Valid {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(lat.Float64, lng.Float64)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// restorePackage rebuilds the full aggregate from a scanned row. Only queries
// that feed domain services need the aggregate; list queries project rows
// straight into response structs instead.
func restorePackage(row packageRow) (*parcel.Package, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}

	var party parcel.Party
	if row.SenderID.Valid {
		senderID, idErr := kernel.UUIDFromBytes(row.SenderID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		party, err = parcel.NewRegisteredParty(senderID)
	} else {
		party, err = parcel.NewGuestParty(row.GuestEmail.String)
	}
	if err != nil {
		return nil, err
	}

	recipient, err := parcel.NewRecipient(row.RecipientName, row.RecipientPhone)
	if err != nil {
		return nil, err
	}

	pickup, err := parcel.NewAddress(row.PickupStreet, row.PickupCity, row.PickupPostcode)
	if err != nil {
		return nil, err
	}

	delivery, err := parcel.NewAddress(row.DeliveryStreet, row.DeliveryCity, row.DeliveryPostcode)
	if err != nil {
		return nil, err
	}

	details, err := parcel.NewDetails(
		row.PackageType,
		nullableFloat(row.WeightKg),
		nullableFloat(row.DeclaredValue),
		row.Dimensions.String,
		row.Notes.String,
	)
	if err != nil {
		return nil, err
	}

	serviceType, err := parcel.ServiceTypeFromString(row.ServiceType)
	if err != nil {
		return nil, err
	}

	status, err := parcel.StatusFromString(row.Status)
	if err != nil {
		return nil, err
	}

	pickupPoint, err := geoPoint(row.PickupLat, row.PickupLng)
	if err != nil {
		return nil, err
	}

	deliveryPoint, err := geoPoint(row.DeliveryLat, row.DeliveryLng)
	if err != nil {
		return nil, err
	}

	driverID, err := nullableUUID(row.DriverID)
	if err != nil {
		return nil, err
	}

	return parcel.RestorePackage(parcel.RestorePackageParams{
		ID:              id,
		TrackingNumber:  row.TrackingNumber,
		Party:           party,
		DriverID:        driverID,
		Recipient:       recipient,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		PickupPoint:     pickupPoint,
		DeliveryPoint:   deliveryPoint,
		Details:         details,
		ServiceType:     serviceType,
		Price:           row.Price,
		Status:          status,
		CreatedAt:       row.CreatedAt,
		AssignedAt:      nullableTime(row.AssignedAt),
		DeliveredAt:     nullableTime(row.DeliveredAt),
	})
}
