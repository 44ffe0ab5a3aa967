package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It is the engine's view of the durable Order Store: keyed records with a
// conditional (compare-and-swap) update primitive. The repository is the only
// component permitted to write order state; all mutation funnels through
// UpdateConditional.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateConditional persists a mutated order aggregate, guarded by the
	// version the caller observed before mutating. The write succeeds only if
	// the stored version still equals expectedVersion; otherwise it returns an
	// error unwrapping to errs.ErrVersionConflict and leaves the record
	// untouched. This conditional write is the single point of serialization
	// for concurrent claims.
	UpdateConditional(ctx context.Context, aggregate *order.Order, expectedVersion int64) error

	// Get retrieves an order aggregate by its unique identifier, including its
	// current version token.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReady retrieves the available pool: every order in Ready status.
	GetAllReady(ctx context.Context) ([]*order.Order, error)

	// GetActiveByDriver retrieves the driver's active order, i.e. the order
	// owned by the driver in Assigned or PickedUp status. The domain invariant
	// guarantees at most one such order exists; an error unwrapping to
	// errs.ErrObjectNotFound is returned when there is none.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*order.Order, error)
}
