package commands

import (
	"context"
	"errors"
	"time"

	"courier/internal/core/domain/model/profile"
	"courier/internal/pkg/errs"
)

// UpsertProfileCommandHandler creates or updates the acting user's profile.
// The first write creates the row; later writes amend it in place.
type UpsertProfileCommandHandler struct {
	uowFactory ProfileUoWFactory
}

// NewUpsertProfileCommandHandler creates a handler for profile upserts.
func NewUpsertProfileCommandHandler(uowFactory ProfileUoWFactory) UpsertProfileCommandHandler {
	return UpsertProfileCommandHandler{uowFactory: uowFactory}
}

// Handle processes the upsert and returns the profile as stored.
func (h *UpsertProfileCommandHandler) Handle(ctx context.Context, cmd UpsertProfileCommand) (*profile.Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	params := cmd.Params()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProfileRepository()

	existing, err := repo.Get(ctx, cmd.User().ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if existing == nil {
		created, createErr := h.create(ctx, cmd, now)
		if createErr != nil {
			return nil, createErr
		}
		if createErr = repo.Add(ctx, created); createErr != nil {
			return nil, createErr
		}
		if createErr = uow.Commit(ctx); createErr != nil {
			return nil, createErr
		}
		return created, nil
	}

	if err = existing.SetContact(params.FullName, params.Phone, now); err != nil {
		return nil, err
	}
	if err = h.applyDriverFields(existing, params, now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}

func (h *UpsertProfileCommandHandler) create(
	_ context.Context, cmd UpsertProfileCommand, now time.Time,
) (*profile.Profile, error) {
	created, err := profile.NewProfile(
		cmd.User().ID(), cmd.Params().FullName, cmd.Params().Phone, cmd.User().Role(), now)
	if err != nil {
		return nil, err
	}

	if err = h.applyDriverFields(created, cmd.Params(), now); err != nil {
		return nil, err
	}

	return created, nil
}

// applyDriverFields writes vehicle details and availability. Both are
// driver-only; submitting them on a non-driver profile is an error.
func (h *UpsertProfileCommandHandler) applyDriverFields(
	p *profile.Profile, params UpsertProfileParams, now time.Time,
) error {
	if params.DriverLicense != "" || params.VehicleType != "" {
		if err := p.SetVehicle(params.DriverLicense, params.VehicleType, now); err != nil {
			return err
		}
	}

	if params.Available != nil {
		if err := p.SetAvailability(*params.Available, now); err != nil {
			return err
		}
	}

	return nil
}
