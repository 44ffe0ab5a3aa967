package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AdvanceOrderCommandHandler is the generalized transition coordinator: it
// moves an order to any requested lifecycle status on behalf of a driver,
// using the same read-validate-conditional-write loop as the claim handler.
// A claim routed through it (target Assigned) receives the same
// one-active-order admission check.
//
// Conflicts and store failures are surfaced, never retried; a caller that
// timed out must re-read the order before re-attempting, because the outcome
// of an in-flight conditional write is unknown.
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.Lifecycle
	publisher  ports.OrderEventPublisher
}

// NewAdvanceOrderCommandHandler creates a handler for advance operations.
// Requires a UoWFactory for transactional access to orders and drivers, and a
// publisher notified after each committed transition.
func NewAdvanceOrderCommandHandler(uowFactory UoWFactory, publisher ports.OrderEventPublisher) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewLifecycle(),
		publisher:  publisher,
	}
}

// Handle processes the advance command and returns the updated order on success.
//
// Failure modes:
//   - ErrDriverNotRegistered: unknown driver identity
//   - ErrDriverHasActiveOrder: claim attempt while another delivery is active
//   - errs.ErrObjectNotFound: the order does not exist
//   - order.ErrInvalidTransition: the requested edge is not legal from the
//     order's current status
//   - order.ErrUnauthorizedActor: the driver does not own the order
//   - errs.ErrVersionConflict: another actor mutated the order first
//
// Every failure leaves the order unchanged.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, command AdvanceOrderCommand) (*order.Order, error) {
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

	if command.TargetStatus() == order.Assigned {
		_, err := orderRepo.GetActiveByDriver(ctx, command.DriverID())
		if err == nil {
			return nil, ErrDriverHasActiveOrder
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
	}

	advanced, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	expectedVersion := advanced.Version()
	if err = h.lifecycle.Apply(advanced, command.TargetStatus(), command.DriverID()); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateConditional(ctx, advanced, expectedVersion); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.NewChangedEvent(advanced))
	return advanced, nil
}
