package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
)

// CreateOrderCommand represents the store-facing placement of a new delivery
// order. Orders enter the engine in Ready status with pending payment and
// become visible in every driver's available pool.
//
// Example:
//
//	total, _ := kernel.NewMoney(12550, "MAD")
//	fee, _ := kernel.NewMoney(1500, "MAD")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), storeID, total, fee,
//	    "12 Rue des Fleurs", "Amine", "+212600000000")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	storeID         kernel.UUID
	totalAmount     kernel.Money
	deliveryFee     kernel.Money
	deliveryAddress string
	customerName    string
	customerPhone   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates the identifiers, the monetary payload, and the delivery address.
// Customer name and phone are optional.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	storeID kernel.UUID,
	totalAmount kernel.Money,
	deliveryFee kernel.Money,
	deliveryAddress string,
	customerName string,
	customerPhone string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		customerName:  customerName,
		customerPhone: customerPhone,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setStoreID(storeID),
		orderCommand.setTotalAmount(totalAmount),
		orderCommand.setDeliveryFee(deliveryFee),
		orderCommand.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StoreID returns the identifier of the store the order is placed at.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// TotalAmount returns the amount to collect from the customer.
func (c CreateOrderCommand) TotalAmount() kernel.Money {
	return c.totalAmount
}

// DeliveryFee returns the fee charged for the delivery.
func (c CreateOrderCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// DeliveryAddress returns the destination address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// CustomerName returns the customer's display name, possibly empty.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's phone number, possibly empty.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmount kernel.Money) error {
	if err := totalAmount.Validate(); err != nil {
		return err
	}

	c.totalAmount = totalAmount
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(deliveryFee kernel.Money) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}

	c.deliveryFee = deliveryFee
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = deliveryAddress
	return nil
}
