package queries

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// MyJobsQueryHandler retrieves a driver's undelivered jobs from the database.
type MyJobsQueryHandler struct {
	db *gorm.DB
}

// NewMyJobsQueryHandler creates a handler for driver workload queries.
func NewMyJobsQueryHandler(db *gorm.DB) MyJobsQueryHandler {
	return MyJobsQueryHandler{db: db}
}

// Handle executes the query to retrieve the driver's active jobs in the
// order they were claimed.
func (h MyJobsQueryHandler) Handle(
	ctx context.Context,
	query MyJobsQuery,
) ([]MyJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []packageRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT `+packageColumns+`
		FROM packages
		WHERE driver_id = ? AND status IN (?, ?, ?)
		ORDER BY assigned_at
	`,
		query.DriverID().Bytes(),
		parcel.Assigned.String(),
		parcel.PickedUp.String(),
		parcel.InTransit.String(),
	).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]MyJobsQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, MyJobsQueryResponse{
			ID:              id,
			TrackingNumber:  row.TrackingNumber,
			Status:          row.Status,
			RecipientName:   row.RecipientName,
			RecipientPhone:  row.RecipientPhone,
			PickupAddress:   fullAddress(row.PickupStreet, row.PickupCity, row.PickupPostcode),
			DeliveryAddress: fullAddress(row.DeliveryStreet, row.DeliveryCity, row.DeliveryPostcode),
			PackageType:     row.PackageType,
			WeightKg:        nullableFloat(row.WeightKg),
			ServiceType:     row.ServiceType,
			Price:           row.Price,
			AssignedAt:      nullableTime(row.AssignedAt),
		})
	}

	return jobs, nil
}
