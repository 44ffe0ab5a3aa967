package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAdvanceOrderCommandIsNotConstructed = errors.New(
		"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
	)
	ErrTargetStatusIsInvalid = errors.New("target status must be Assigned, PickedUp, or Delivered")
)

// AdvanceOrderCommand represents a driver's request to move an order to a
// specific lifecycle status: Assigned (claim), PickedUp (pickup confirmation),
// or Delivered (delivery confirmation).
//
// Example:
//
//	cmd, err := NewAdvanceOrderCommand(orderID, driverID, order.PickedUp)
//	if err != nil {
//	    return fmt.Errorf("invalid advance request: %w", err)
//	}
//	updated, err := handler.Handle(ctx, cmd)
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	driverID     kernel.UUID
	targetStatus order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order toward the
// given target status. Validates both identifiers and that the target is a
// reachable status (Ready is initial, never a target).
func NewAdvanceOrderCommand(orderID, driverID kernel.UUID, targetStatus order.Status) (AdvanceOrderCommand, error) {
	advanceCommand := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setOrderID(orderID),
		advanceCommand.setDriverID(driverID),
		advanceCommand.setTargetStatus(targetStatus),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceOrderCommandIsNotConstructed if validation fails.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being advanced.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identifier of the acting driver.
func (c AdvanceOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

// TargetStatus returns the requested lifecycle status.
func (c AdvanceOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *AdvanceOrderCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return ErrTargetStatusIsInvalid
	}
	if targetStatus == order.Ready {
		return ErrTargetStatusIsInvalid
	}

	c.targetStatus = targetStatus
	return nil
}
