package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Lifecycle is a domain service that dispatches a requested target status to
// the matching aggregate transition. It is the single translation point
// between "the caller wants the order in status X" and the named transitions
// the Order aggregate exposes.
//
// Key responsibilities:
//   - Validating orders and actors before applying a transition
//   - Mapping a target status onto claim, pickup, or deliver
//   - Rejecting anything else as an invalid transition without touching the order
//
// Business rules:
//   - Assigned is reached only by a claim from Ready
//   - PickedUp and Delivered are reached only by the owning driver
//   - Ready is an initial status, never a transition target
//
// Example usage:
//
//	lifecycle := services.NewLifecycle()
//	err := lifecycle.Apply(o, order.PickedUp, driverID)
//	if errors.Is(err, order.ErrUnauthorizedActor) {
//	    // Not this driver's order
//	    return
//	}
//
// The service is pure: it performs no I/O and a rejected request leaves the
// order unmodified.
type Lifecycle struct{}

// NewLifecycle creates a new Lifecycle instance.
func NewLifecycle() Lifecycle {
	return Lifecycle{}
}

// Apply advances the order toward the requested target status on behalf of
// the acting driver.
//
// Parameters:
//   - o: The order to advance (must be valid)
//   - target: The requested status (Assigned, PickedUp, or Delivered)
//   - actorID: The driver requesting the transition
//
// Returns nil on success. On failure the order is left unmodified and the
// error unwraps to order.ErrInvalidTransition or order.ErrUnauthorizedActor.
func (Lifecycle) Apply(o *order.Order, target order.Status, actorID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}

	switch target {
	case order.Assigned:
		return o.Claim(actorID)
	case order.PickedUp:
		return o.Pickup(actorID)
	case order.Delivered:
		return o.Deliver(actorID)
	default:
		return order.NewInvalidTransitionError(o.Status(), target)
	}
}
