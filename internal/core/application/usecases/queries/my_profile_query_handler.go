package queries

import (
	"context"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MyProfileQueryHandler retrieves a user's profile from the database.
type MyProfileQueryHandler struct {
	db *gorm.DB
}

// NewMyProfileQueryHandler creates a handler for profile queries.
func NewMyProfileQueryHandler(db *gorm.DB) MyProfileQueryHandler {
	return MyProfileQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when the user has
// not created a profile yet.
func (h MyProfileQueryHandler) Handle(
	ctx context.Context,
	query MyProfileQuery,
) (*MyProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var row struct {
		UserID        uuid.UUID
		FullName      string
		Phone         string
		Role          string
		DriverLicense string
		VehicleType   string
		Available     bool
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT user_id, full_name, phone, role, driver_license, vehicle_type,
		       available, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`, query.UserID().Bytes()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("profile", query.UserID().String())
	}

	userID, err := kernel.UUIDFromBytes(row.UserID[:])
	if err != nil {
		return nil, err
	}

	return &MyProfileQueryResponse{
		UserID:        userID,
		FullName:      row.FullName,
		Phone:         row.Phone,
		Role:          row.Role,
		DriverLicense: row.DriverLicense,
		VehicleType:   row.VehicleType,
		Available:     row.Available,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
