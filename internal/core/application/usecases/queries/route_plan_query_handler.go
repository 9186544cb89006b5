package queries

import (
	"context"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/services"

	"gorm.io/gorm"
)

// RoutePlanQueryHandler builds a driver's run sheet by restoring the active
// job aggregates and handing them to the route planner.
type RoutePlanQueryHandler struct {
	db      *gorm.DB
	planner services.RoutePlanner
}

// NewRoutePlanQueryHandler creates a handler for run sheet queries.
func NewRoutePlanQueryHandler(db *gorm.DB, planner services.RoutePlanner) RoutePlanQueryHandler {
	return RoutePlanQueryHandler{db: db, planner: planner}
}

// Handle executes the query to build the driver's run sheet in claim order.
func (h RoutePlanQueryHandler) Handle(
	ctx context.Context,
	query RoutePlanQuery,
) ([]RoutePlanQueryResponse, error) {
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

	jobs := make([]*parcel.Package, 0, len(rows))
	for _, row := range rows {
		pkg, err := restorePackage(row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, pkg)
	}

	stops, err := h.planner.Plan(jobs, query.Origin())
	if err != nil {
		return nil, err
	}

	plan := make([]RoutePlanQueryResponse, 0, len(stops))
	for _, stop := range stops {
		plan = append(plan, RoutePlanQueryResponse{
			Sequence:        stop.Sequence,
			PackageID:       stop.Package.ID(),
			TrackingNumber:  stop.Package.TrackingNumber(),
			Status:          stop.Package.Status().String(),
			PickupAddress:   stop.Package.PickupAddress().FullText(),
			DeliveryAddress: stop.Package.DeliveryAddress().FullText(),
			DistanceKm:      stop.DistanceKm,
		})
	}

	return plan, nil
}
