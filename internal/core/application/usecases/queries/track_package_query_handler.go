package queries

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackPackageQueryHandler serves public tracking lookups through a
// read-through cache. A cache hit skips the database entirely; a miss reads
// the packages table, stores the projection, and returns it. Cache failures
// degrade to database reads rather than failing the lookup.
type TrackPackageQueryHandler struct {
	db     *gorm.DB
	cache  ports.TrackingCache
	logger *slog.Logger
}

// NewTrackPackageQueryHandler creates a handler for public tracking lookups.
func NewTrackPackageQueryHandler(
	db *gorm.DB,
	cache ports.TrackingCache,
	logger *slog.Logger,
) TrackPackageQueryHandler {
	return TrackPackageQueryHandler{db: db, cache: cache, logger: logger}
}

// Handle resolves the tracking snapshot for the queried number.
// Returns ObjectNotFoundError when no package carries the number.
func (h TrackPackageQueryHandler) Handle(
	ctx context.Context,
	query TrackPackageQuery,
) (*ports.TrackingSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cached, err := h.cache.Get(ctx, query.TrackingNumber())
	if err != nil {
		h.logger.Warn("tracking cache read failed",
			"tracking_number", query.TrackingNumber(),
			"error", err)
	}
	if cached != nil {
		return cached, nil
	}

	var row struct {
		ID             uuid.UUID
		TrackingNumber string
		Status         string
		RecipientName  string
		PickupCity     string
		DeliveryCity   string
		ServiceType    string
		CreatedAt      time.Time
		AssignedAt     sql.NullTime
		DeliveredAt    sql.NullTime
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			status,
			recipient_name,
			pickup_city,
			delivery_city,
			service_type,
			created_at,
			assigned_at,
			delivered_at
		FROM packages
		WHERE tracking_number = ?
	`, query.TrackingNumber()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("tracking number", query.TrackingNumber())
	}

	events, err := h.loadEvents(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	snapshot := &ports.TrackingSnapshot{
		TrackingNumber: row.TrackingNumber,
		Status:         row.Status,
		RecipientName:  row.RecipientName,
		PickupCity:     row.PickupCity,
		DeliveryCity:   row.DeliveryCity,
		ServiceType:    row.ServiceType,
		CreatedAt:      row.CreatedAt,
		AssignedAt:     nullableTime(row.AssignedAt),
		DeliveredAt:    nullableTime(row.DeliveredAt),
		Events:         events,
	}

	if err := h.cache.Set(ctx, snapshot); err != nil {
		h.logger.Warn("tracking cache write failed",
			"tracking_number", query.TrackingNumber(),
			"error", err)
	}

	return snapshot, nil
}

// loadEvents reads the audit timeline for the tracked package, oldest first.
func (h TrackPackageQueryHandler) loadEvents(
	ctx context.Context,
	packageID uuid.UUID,
) ([]ports.TrackingEvent, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT event_type, description, created_at
		FROM package_events
		WHERE package_id = ?
		ORDER BY created_at
	`, packageID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]ports.TrackingEvent, 0)
	for rows.Next() {
		var event ports.TrackingEvent

		if err = rows.Scan(&event.Status, &event.Description, &event.CreatedAt); err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
