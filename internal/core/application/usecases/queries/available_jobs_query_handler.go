package queries

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// AvailableJobsQueryHandler retrieves the open job board from the database.
type AvailableJobsQueryHandler struct {
	db *gorm.DB
}

// NewAvailableJobsQueryHandler creates a handler for job board queries.
func NewAvailableJobsQueryHandler(db *gorm.DB) AvailableJobsQueryHandler {
	return AvailableJobsQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending unclaimed bookings,
// newest first.
func (h AvailableJobsQueryHandler) Handle(
	ctx context.Context,
	query AvailableJobsQuery,
) ([]AvailableJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []packageRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT `+packageColumns+`
		FROM packages
		WHERE status = ? AND driver_id IS NULL
		ORDER BY created_at DESC
	`, parcel.Pending.String()).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]AvailableJobsQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}

		pickupPoint, err := geoPoint(row.PickupLat, row.PickupLng)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, AvailableJobsQueryResponse{
			ID:              id,
			TrackingNumber:  row.TrackingNumber,
			PickupAddress:   fullAddress(row.PickupStreet, row.PickupCity, row.PickupPostcode),
			DeliveryAddress: fullAddress(row.DeliveryStreet, row.DeliveryCity, row.DeliveryPostcode),
			PickupPoint:     pickupPoint,
			PackageType:     row.PackageType,
			WeightKg:        nullableFloat(row.WeightKg),
			ServiceType:     row.ServiceType,
			Price:           row.Price,
			CreatedAt:       row.CreatedAt,
		})
	}

	return jobs, nil
}
