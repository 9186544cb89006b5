package packagerepo

import (
	"context"
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
//
// The conditional writes (Update, Claim, AdvanceStatus, CancelPending)
// express their preconditions in the UPDATE's WHERE clause. When zero rows
// match, the row is reloaded once to tell "gone" apart from "lost the race"
// and the error is typed accordingly.
type GormPackageRepository struct {
	db *gorm.DB
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

// Add saves a new package to the database.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *parcel.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists the amendable columns of a package that is still pending
// and unclaimed. Lifecycle columns (status, driver_id, assigned_at,
// delivered_at) are owned by Claim, AdvanceStatus, and CancelPending and are
// never written here, so a stale aggregate cannot roll back a claim that
// committed after it was loaded. Nullable coordinates are written through,
// so a dropped delivery point reaches the row as NULL.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *parcel.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PackageDTO{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", dto.ID, parcel.Pending.String()).
		Updates(map[string]any{
			"recipient_name":    dto.RecipientName,
			"recipient_phone":   dto.RecipientPhone,
			"delivery_street":   dto.DeliveryStreet,
			"delivery_city":     dto.DeliveryCity,
			"delivery_postcode": dto.DeliveryPostcode,
			"pickup_lat":        dto.PickupLat,
			"pickup_lng":        dto.PickupLng,
			"delivery_lat":      dto.DeliveryLat,
			"delivery_lng":      dto.DeliveryLng,
			"package_type":      dto.PackageType,
			"weight_kg":         dto.WeightKg,
			"declared_value":    dto.DeclaredValue,
			"dimensions":        dto.Dimensions,
			"notes":             dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.explainUpdateFailure(ctx, aggregate.ID())
	}

	return nil
}

// explainUpdateFailure reloads the row after a missed update to type the error.
func (r *GormPackageRepository) explainUpdateFailure(ctx context.Context, packageID kernel.UUID) error {
	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", packageID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("package", packageID.String())
		}
		return err
	}

	if dto.DriverID != nil {
		return errs.NewAlreadyAssignedError(packageID.String())
	}

	return errs.NewInvalidTransitionError(
		dto.Status, parcel.Pending.String(), "only pending packages can be amended")
}

// Get retrieves a package by ID.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a package by its public tracking number.
func (r *GormPackageRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber string,
) (*parcel.Package, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("tracking number")
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking number", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves all unclaimed pending packages, newest first.
func (r *GormPackageRepository) GetAllPending(ctx context.Context) ([]*parcel.Package, error) {
	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND driver_id IS NULL", parcel.Pending.String()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetActiveByDriver retrieves the driver's undelivered packages in claim order.
func (r *GormPackageRepository) GetActiveByDriver(
	ctx context.Context,
	driverID kernel.UUID,
) ([]*parcel.Package, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND status IN ?", driverID.Bytes(), []string{
			parcel.Assigned.String(),
			parcel.PickedUp.String(),
			parcel.InTransit.String(),
		}).
		Order("assigned_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllBySender retrieves every package the sender booked, newest first.
func (r *GormPackageRepository) GetAllBySender(
	ctx context.Context,
	senderID kernel.UUID,
) ([]*parcel.Package, error) {
	if err := senderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetPendingMissingCoordinates retrieves pending packages whose pickup or
// delivery coordinates are unresolved, oldest first so stragglers catch up.
func (r *GormPackageRepository) GetPendingMissingCoordinates(
	ctx context.Context,
	limit int,
) ([]*parcel.Package, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsRequiredError("limit")
	}

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND (pickup_lat IS NULL OR delivery_lat IS NULL)", parcel.Pending.String()).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Claim atomically assigns the package to the driver. The pending and
// unclaimed precondition lives in the WHERE clause, so of two racing drivers
// exactly one update matches the row.
func (r *GormPackageRepository) Claim(
	ctx context.Context,
	packageID, driverID kernel.UUID,
	at time.Time,
) error {
	if err := errors.Join(packageID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&PackageDTO{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", packageID.Bytes(), parcel.Pending.String()).
		Updates(map[string]any{
			"status":      parcel.Assigned.String(),
			"driver_id":   driverID.Bytes(),
			"assigned_at": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.explainClaimFailure(ctx, packageID)
	}

	return nil
}

// explainClaimFailure reloads the row after a missed claim to type the error.
func (r *GormPackageRepository) explainClaimFailure(ctx context.Context, packageID kernel.UUID) error {
	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", packageID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("package", packageID.String())
		}
		return err
	}

	if dto.DriverID != nil {
		return errs.NewAlreadyAssignedError(packageID.String())
	}

	return errs.NewInvalidTransitionError(
		dto.Status, parcel.Assigned.String(), "only pending packages can be assigned")
}

// AdvanceStatus atomically moves the package from one status to the next.
// A repeated identical call finds no row in the from status and fails
// instead of double-applying.
func (r *GormPackageRepository) AdvanceStatus(
	ctx context.Context,
	packageID kernel.UUID,
	from, to parcel.Status,
	at time.Time,
) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}

	updates := map[string]any{"status": to.String()}
	if to == parcel.Delivered {
		updates["delivered_at"] = at
	}

	result := r.db.WithContext(ctx).Model(&PackageDTO{}).
		Where("id = ? AND status = ?", packageID.Bytes(), from.String()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto PackageDTO
		if err := r.db.WithContext(ctx).First(&dto, "id = ?", packageID.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("package", packageID.String())
			}
			return err
		}

		return errs.NewInvalidTransitionError(dto.Status, to.String(), "status changed concurrently")
	}

	return nil
}

// CancelPending atomically cancels the package while it is still pending
// and unclaimed.
func (r *GormPackageRepository) CancelPending(ctx context.Context, packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&PackageDTO{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", packageID.Bytes(), parcel.Pending.String()).
		Update("status", parcel.Cancelled.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto PackageDTO
		if err := r.db.WithContext(ctx).First(&dto, "id = ?", packageID.Bytes()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("package", packageID.String())
			}
			return err
		}

		return errs.NewInvalidTransitionError(
			dto.Status, parcel.Cancelled.String(), "only pending packages can be cancelled")
	}

	return nil
}

// AddEvent appends an audit event. Events are insert-only.
func (r *GormPackageRepository) AddEvent(ctx context.Context, event *parcel.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := eventFromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetEvents retrieves a package's audit trail, oldest first.
func (r *GormPackageRepository) GetEvents(
	ctx context.Context,
	packageID kernel.UUID,
) ([]*parcel.Event, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*parcel.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, convErr := eventToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, event)
	}

	return events, nil
}

func toDomainSlice(dtos []PackageDTO) ([]*parcel.Package, error) {
	packages := make([]*parcel.Package, 0, len(dtos))
	for _, dto := range dtos {
		pkg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}
