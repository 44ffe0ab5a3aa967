package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrUnauthorizedActor is the unwrap target for transition attempts by a
	// driver who does not own the order. The order is left unmodified.
	ErrUnauthorizedActor = errors.New("actor does not own the order")
)

// UnauthorizedActorError describes a transition attempt by a driver other than
// the order's current owner.
type UnauthorizedActorError struct {
	OrderID kernel.UUID
	ActorID kernel.UUID
}

// NewUnauthorizedActorError creates an UnauthorizedActorError for the given order and actor.
func NewUnauthorizedActorError(orderID, actorID kernel.UUID) *UnauthorizedActorError {
	return &UnauthorizedActorError{OrderID: orderID, ActorID: actorID}
}

func (e *UnauthorizedActorError) Error() string {
	return fmt.Sprintf("%s: order %s, actor %s", ErrUnauthorizedActor, e.OrderID, e.ActorID)
}

func (e *UnauthorizedActorError) Unwrap() error {
	return ErrUnauthorizedActor
}

// Order represents a delivery order in the system. It is the aggregate root
// that manages the order lifecycle from placement through claim, pickup, and
// delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and store reference
//   - Carries a driver if and only if it has left the Ready status
//   - Payment is Collected if and only if the order is Delivered
//   - The version strictly increases with every accepted transition
//   - Status transitions follow the Ready -> Assigned -> PickedUp -> Delivered workflow
//   - Can only be created through NewOrder or RestoreOrder
//
// The descriptive payload (total amount, delivery fee, address, customer
// contact) is opaque to the lifecycle logic and passed through read-only.
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// storeID references the store the order is picked up from
	storeID kernel.UUID

	// driverID is the owning driver's ID (nil while Ready, never cleared once set)
	driverID *kernel.UUID

	// status represents the current state in the order lifecycle
	status Status

	// paymentStatus tracks cash settlement, flipped by the deliver transition
	paymentStatus PaymentStatus

	// version is the optimistic-concurrency token, incremented per transition
	version int64

	// descriptive payload, read-only pass-through
	totalAmount     kernel.Money
	deliveryFee     kernel.Money
	deliveryAddress string
	customerName    string
	customerPhone   string

	// isConstructed ensures the order was created via a factory
	isConstructed bool
}

// NewOrder creates a new Order in the Ready status with pending payment and
// version 1. This is the entry point for the store-facing placement flow.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - storeID: The store the order belongs to (must be a valid UUID)
//   - totalAmount: The amount the driver collects on delivery
//   - deliveryFee: The fee charged for delivery (zero allowed)
//   - deliveryAddress: Destination address (required)
//   - customerName, customerPhone: Optional customer contact details
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	totalAmount kernel.Money,
	deliveryFee kernel.Money,
	deliveryAddress string,
	customerName string,
	customerPhone string,
) (*Order, error) {
	order := &Order{
		status:        Ready,
		paymentStatus: PaymentPending,
		version:       1,
		customerName:  customerName,
		customerPhone: customerPhone,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setTotalAmount(totalAmount),
		order.setDeliveryFee(deliveryFee),
		order.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any lifecycle position, but it still enforces the cross-field
// invariants: driver presence must match the status, payment must match the
// status, and the version must be positive.
func RestoreOrder(
	id kernel.UUID,
	storeID kernel.UUID,
	totalAmount kernel.Money,
	deliveryFee kernel.Money,
	deliveryAddress string,
	customerName string,
	customerPhone string,
	status Status,
	paymentStatus PaymentStatus,
	driverID *kernel.UUID,
	version int64,
) (*Order, error) {
	order := &Order{
		customerName:  customerName,
		customerPhone: customerPhone,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setStoreID(storeID),
		order.setTotalAmount(totalAmount),
		order.setDeliveryFee(deliveryFee),
		order.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}
	if err := paymentStatus.ValidateConsistentWith(status); err != nil {
		return nil, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		copied := *driverID
		order.driverID = &copied
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not greater than 0", version))
	}

	order.status = status
	order.paymentStatus = paymentStatus
	order.version = version
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the identifier of the store the order belongs to.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// Driver returns the owning driver's ID, or nil while the order is Ready.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status of the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Version returns the optimistic-concurrency token. It increases by exactly
// one with every accepted transition.
func (o *Order) Version() int64 {
	return o.version
}

// TotalAmount returns the amount collected from the customer on delivery.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// DeliveryFee returns the fee charged for the delivery.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// DeliveryAddress returns the destination address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// CustomerName returns the customer's display name, possibly empty.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the customer's phone number, possibly empty.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// IsOwnedBy reports whether the given driver currently owns the order.
func (o *Order) IsOwnedBy(driverID kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driverID)
}

// Claim assigns the order to a driver and moves it to Assigned.
//
// Business rules enforced:
//   - The driver ID must be valid
//   - The order must be Ready with no driver set
//
// On success the driver is recorded, the status becomes Assigned, and the
// version is incremented. On failure the order is left unmodified.
func (o *Order) Claim(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	if o.driverID != nil {
		return NewInvalidTransitionError(o.status, Assigned)
	}

	o.status = newStatus
	o.driverID = &driverID
	o.version++
	return nil
}

// Pickup confirms the owning driver collected the order from the store,
// moving it to PickedUp.
//
// Business rules enforced:
//   - The order must be Assigned
//   - Only the owning driver may confirm the pickup; any other actor is
//     rejected with an UnauthorizedActorError
//
// On failure the order is left unmodified.
func (o *Order) Pickup(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Pickup()
	if err != nil {
		return err
	}

	if !o.IsOwnedBy(actorID) {
		return NewUnauthorizedActorError(o.id, actorID)
	}

	o.status = newStatus
	o.version++
	return nil
}

// Deliver confirms the order reached the customer, moving it to the terminal
// Delivered status and settling payment to Collected in the same mutation.
// Payment settlement is never a separate write.
//
// Business rules enforced:
//   - The order must be PickedUp
//   - Only the owning driver may confirm the delivery
//
// On failure the order is left unmodified.
func (o *Order) Deliver(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	if !o.IsOwnedBy(actorID) {
		return NewUnauthorizedActorError(o.id, actorID)
	}

	o.status = newStatus
	o.paymentStatus = PaymentCollected
	o.version++
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setStoreID validates and sets the order's store reference.
// This is a private method used only during construction.
func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

// setTotalAmount validates and sets the order's total amount.
// This is a private method used only during construction.
func (o *Order) setTotalAmount(totalAmount kernel.Money) error {
	if err := totalAmount.Validate(); err != nil {
		return err
	}
	o.totalAmount = totalAmount
	return nil
}

// setDeliveryFee validates and sets the order's delivery fee.
// This is a private method used only during construction.
func (o *Order) setDeliveryFee(deliveryFee kernel.Money) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}
	o.deliveryFee = deliveryFee
	return nil
}

// setDeliveryAddress validates and sets the destination address.
// This is a private method used only during construction.
func (o *Order) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = deliveryAddress
	return nil
}
