package queries

import (
	"context"
	"sort"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// NearbyJobsQueryHandler retrieves claimable jobs ranked by distance from
// the driver. Geocoded pickup coordinates are the ranking key; the database
// narrows the set to geocoded pending jobs and the haversine math runs here.
type NearbyJobsQueryHandler struct {
	db *gorm.DB
}

// NewNearbyJobsQueryHandler creates a handler for nearby job searches.
func NewNearbyJobsQueryHandler(db *gorm.DB) NearbyJobsQueryHandler {
	return NearbyJobsQueryHandler{db: db}
}

// Handle executes the radius search. Jobs beyond the query radius are
// dropped and the remainder is sorted by ascending distance.
func (h NearbyJobsQueryHandler) Handle(
	ctx context.Context,
	query NearbyJobsQuery,
) ([]NearbyJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []packageRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT `+packageColumns+`
		FROM packages
		WHERE status = ?
			AND driver_id IS NULL
			AND pickup_lat IS NOT NULL
			AND pickup_lng IS NOT NULL
	`, parcel.Pending.String()).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	origin := query.Origin()
	jobs := make([]NearbyJobsQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}

		pickupPoint, err := geoPoint(row.PickupLat, row.PickupLng)
		if err != nil {
			return nil, err
		}

		distance, err := origin.DistanceKm(*pickupPoint)
		if err != nil {
			return nil, err
		}
		if distance > query.MaxKm() {
			continue
		}

		jobs = append(jobs, NearbyJobsQueryResponse{
			AvailableJobsQueryResponse: AvailableJobsQueryResponse{
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
			},
			DistanceKm: distance,
		})
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].DistanceKm < jobs[j].DistanceKm
	})

	return jobs, nil
}
