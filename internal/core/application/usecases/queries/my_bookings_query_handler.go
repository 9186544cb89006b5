package queries

import (
	"context"

	"courier/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// MyBookingsQueryHandler retrieves a sender's booking history from the
// database.
type MyBookingsQueryHandler struct {
	db *gorm.DB
}

// NewMyBookingsQueryHandler creates a handler for booking history queries.
func NewMyBookingsQueryHandler(db *gorm.DB) MyBookingsQueryHandler {
	return MyBookingsQueryHandler{db: db}
}

// Handle executes the query to retrieve all of the sender's bookings,
// newest first.
func (h MyBookingsQueryHandler) Handle(
	ctx context.Context,
	query MyBookingsQuery,
) ([]MyBookingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []packageRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT `+packageColumns+`
		FROM packages
		WHERE sender_id = ?
		ORDER BY created_at DESC
	`, query.SenderID().Bytes()).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	bookings := make([]MyBookingsQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}

		driverID, err := nullableUUID(row.DriverID)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, MyBookingsQueryResponse{
			ID:              id,
			TrackingNumber:  row.TrackingNumber,
			Status:          row.Status,
			RecipientName:   row.RecipientName,
			PickupAddress:   fullAddress(row.PickupStreet, row.PickupCity, row.PickupPostcode),
			DeliveryAddress: fullAddress(row.DeliveryStreet, row.DeliveryCity, row.DeliveryPostcode),
			PackageType:     row.PackageType,
			ServiceType:     row.ServiceType,
			Price:           row.Price,
			DriverID:        driverID,
			CreatedAt:       row.CreatedAt,
			AssignedAt:      nullableTime(row.AssignedAt),
			DeliveredAt:     nullableTime(row.DeliveredAt),
		})
	}

	return bookings, nil
}
