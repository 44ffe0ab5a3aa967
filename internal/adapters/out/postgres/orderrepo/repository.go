package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// Infrastructure failures on the database round trip surface as
// errs.ErrStoreUnavailable; only missing rows and lost version races map to
// their own error types.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreUnavailableErrorWithCause("orders", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateConditional saves an existing order only if its stored version still
// equals expectedVersion. The version predicate in the WHERE clause is what
// makes concurrent claims safe: of two writers racing from the same snapshot,
// exactly one matches a row.
//
// Only the mutable columns are written; the order payload is immutable after
// creation.
func (r *GormOrderRepository) UpdateConditional(
	ctx context.Context,
	aggregate *order.Order,
	expectedVersion int64,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"driver_id":      dto.DriverID,
			"status":         dto.Status,
			"payment_status": dto.PaymentStatus,
			"version":        dto.Version,
		})
	if result.Error != nil {
		return errs.NewStoreUnavailableErrorWithCause("orders", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.NewStoreUnavailableErrorWithCause("orders", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionConflictError("order", expectedVersion)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}

	return toDomain(dto)
}

// GetAllReady retrieves all orders available for claiming.
func (r *GormOrderRepository) GetAllReady(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "status = ?", int(order.Ready)).Error; err != nil {
		return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// GetActiveByDriver retrieves the driver's order in Assigned or PickedUp
// status. At most one row can match because claims enforce the
// one-active-order rule before committing.
func (r *GormOrderRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*order.Order, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "driver_id = ? AND status IN (?, ?)",
			driverID.Bytes(), int(order.Assigned), int(order.PickedUp)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active order", driverID.String())
		}
		return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}

	return toDomain(dto)
}
