package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrDriverNotRegistered is returned when the claiming driver is unknown
	// to the driver registry.
	ErrDriverNotRegistered = errors.New("driver is not registered")

	// ErrDriverHasActiveOrder is returned when a driver who already owns an
	// Assigned or PickedUp order attempts to claim another one.
	ErrDriverHasActiveOrder = errors.New("driver already has an active order")
)

// ClaimOrderCommandHandler coordinates concurrent claim attempts so that
// exactly one driver wins each Ready order.
//
// The algorithm is read-validate-conditional-write: load the order and its
// version, apply the claim through the aggregate, then persist with a write
// guarded by the previously observed version. If another actor mutated the
// order first, the guarded write fails with a version conflict and the whole
// attempt rolls back with no partial effect. Conflicts are surfaced to the
// caller, never retried here; the client re-fetches and decides.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory, publisher)
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrVersionConflict):
//	    // "order already taken"
//	case errors.Is(err, ErrDriverHasActiveOrder):
//	    // finish the current delivery first
//	case err != nil:
//	    // other failure
//	}
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
// Requires a UoWFactory for transactional access to orders and drivers, and a
// publisher notified after each committed claim.
func NewClaimOrderCommandHandler(uowFactory UoWFactory, publisher ports.OrderEventPublisher) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim command and returns the claimed order on success.
//
// Failure modes:
//   - ErrDriverNotRegistered: unknown driver identity
//   - ErrDriverHasActiveOrder: the driver already owns an active order
//   - errs.ErrObjectNotFound: the order does not exist
//   - order.ErrInvalidTransition: the order has already left Ready
//   - errs.ErrVersionConflict: another actor won the race for this version
//
// Every failure leaves the order unchanged.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, command ClaimOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.DriverRepository().Get(ctx, command.DriverID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrDriverNotRegistered
		}
		return nil, err
	}

	orderRepo := uow.OrderRepository()

	_, err := orderRepo.GetActiveByDriver(ctx, command.DriverID())
	if err == nil {
		return nil, ErrDriverHasActiveOrder
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	claimed, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	expectedVersion := claimed.Version()
	if err = claimed.Claim(command.DriverID()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateConditional(ctx, claimed, expectedVersion); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.NewChangedEvent(claimed))
	return claimed, nil
}
