// Package profilerepo provides data transfer objects and mapping functions
// for user profile persistence.
package profilerepo

import (
	"time"

	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/profile"

	"github.com/google/uuid"
)

// ProfileDTO represents the database structure for persisting user profiles.
// The owning user's id is the primary key; one profile per account.
type ProfileDTO struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName      string
	Phone         string
	Role          string `gorm:"index"`
	DriverLicense string
	VehicleType   string
	Available     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for profiles.
func (ProfileDTO) TableName() string {
	return "profiles"
}

// fromDomain converts a profile entity to its database representation.
func fromDomain(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:        p.UserID().Bytes(),
		FullName:      p.FullName(),
		Phone:         p.Phone(),
		Role:          p.Role().String(),
		DriverLicense: p.DriverLicense(),
		VehicleType:   p.VehicleType(),
		Available:     p.Available(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a profile entity.
func toDomain(dto ProfileDTO) (*profile.Profile, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	role, err := actor.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return profile.RestoreProfile(profile.RestoreProfileParams{
		UserID:        userID,
		FullName:      dto.FullName,
		Phone:         dto.Phone,
		Role:          role,
		DriverLicense: dto.DriverLicense,
		VehicleType:   dto.VehicleType,
		Available:     dto.Available,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}
