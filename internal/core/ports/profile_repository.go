package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/profile"
)

// ProfileRepository defines the persistence contract for user profiles.
type ProfileRepository interface {
	// Add persists a new profile.
	Add(ctx context.Context, aggregate *profile.Profile) error

	// Update persists changes to an existing profile.
	Update(ctx context.Context, aggregate *profile.Profile) error

	// Get retrieves a profile by the owning user's id.
	Get(ctx context.Context, userID kernel.UUID) (*profile.Profile, error)
}
