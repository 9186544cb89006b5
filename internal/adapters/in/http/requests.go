package http

import (
	"strconv"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type createBookingRequest struct {
	GuestEmail string `json:"guest_email"`

	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`

	PickupStreet   string `json:"pickup_street"`
	PickupCity     string `json:"pickup_city"`
	PickupPostcode string `json:"pickup_postcode"`

	DeliveryStreet   string `json:"delivery_street"`
	DeliveryCity     string `json:"delivery_city"`
	DeliveryPostcode string `json:"delivery_postcode"`

	PackageType   string   `json:"package_type"`
	WeightKg      *float64 `json:"weight_kg"`
	DeclaredValue *float64 `json:"declared_value"`
	Dimensions    string   `json:"dimensions"`
	Notes         string   `json:"notes"`

	ServiceType string `json:"service_type"`
}

func (r createBookingRequest) toParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		GuestEmail:       r.GuestEmail,
		RecipientName:    r.RecipientName,
		RecipientPhone:   r.RecipientPhone,
		PickupStreet:     r.PickupStreet,
		PickupCity:       r.PickupCity,
		PickupPostcode:   r.PickupPostcode,
		DeliveryStreet:   r.DeliveryStreet,
		DeliveryCity:     r.DeliveryCity,
		DeliveryPostcode: r.DeliveryPostcode,
		PackageType:      r.PackageType,
		WeightKg:         r.WeightKg,
		DeclaredValue:    r.DeclaredValue,
		Dimensions:       r.Dimensions,
		Notes:            r.Notes,
		ServiceType:      r.ServiceType,
	}
}

type editBookingRequest struct {
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`

	DeliveryStreet   string `json:"delivery_street"`
	DeliveryCity     string `json:"delivery_city"`
	DeliveryPostcode string `json:"delivery_postcode"`

	PackageType   string   `json:"package_type"`
	WeightKg      *float64 `json:"weight_kg"`
	DeclaredValue *float64 `json:"declared_value"`
	Dimensions    string   `json:"dimensions"`
	Notes         string   `json:"notes"`
}

func (r editBookingRequest) toParams() commands.EditBookingParams {
	return commands.EditBookingParams{
		RecipientName:    r.RecipientName,
		RecipientPhone:   r.RecipientPhone,
		DeliveryStreet:   r.DeliveryStreet,
		DeliveryCity:     r.DeliveryCity,
		DeliveryPostcode: r.DeliveryPostcode,
		PackageType:      r.PackageType,
		WeightKg:         r.WeightKg,
		DeclaredValue:    r.DeclaredValue,
		Dimensions:       r.Dimensions,
		Notes:            r.Notes,
	}
}

type upsertProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`

	DriverLicense string `json:"driver_license"`
	VehicleType   string `json:"vehicle_type"`
	Available     *bool  `json:"available"`
}

func (r upsertProfileRequest) toParams() commands.UpsertProfileParams {
	return commands.UpsertProfileParams{
		FullName:      r.FullName,
		Phone:         r.Phone,
		DriverLicense: r.DriverLicense,
		VehicleType:   r.VehicleType,
		Available:     r.Available,
	}
}

type advanceStatusRequest struct {
	Status string `json:"status"`
}

type postMessageRequest struct {
	Text string `json:"text"`
}

// floatQueryParam parses a float query parameter. A missing optional
// parameter yields zero, which downstream constructors treat as unset.
func floatQueryParam(c echo.Context, name string, required bool) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		if required {
			return 0, errs.NewValueIsRequiredError(name)
		}
		return 0, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	return value, nil
}

// originQueryParam parses the optional lat/lng pair for route planning.
// Supplying only one of the two is an error.
func originQueryParam(c echo.Context) (*kernel.GeoPoint, error) {
	rawLat := c.QueryParam("lat")
	rawLng := c.QueryParam("lng")

	if rawLat == "" && rawLng == "" {
		return nil, nil
	}
	if rawLat == "" || rawLng == "" {
		return nil, errs.NewValueIsRequiredError("lat and lng")
	}

	lat, err := floatQueryParam(c, "lat", true)
	if err != nil {
		return nil, err
	}
	lng, err := floatQueryParam(c, "lng", true)
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}

	return &origin, nil
}
