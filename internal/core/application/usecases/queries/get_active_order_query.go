package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetActiveOrderQueryIsNotConstructed = errors.New(
		"GetActiveOrderQuery must be created via NewGetActiveOrderQuery constructor",
	)
)

// GetActiveOrderQuery retrieves the order a driver is currently working on.
// An order is active while it is Assigned or PickedUp; a driver has at most
// one such order at any time.
//
// Example:
//
//	query, err := NewGetActiveOrderQuery(driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid driver id: %w", err)
//	}
//
//	active, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // driver has no delivery in progress
//	}
type GetActiveOrderQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrderQuery creates a query for a driver's current delivery.
// Validates the driver identifier.
func NewGetActiveOrderQuery(driverID kernel.UUID) (GetActiveOrderQuery, error) {
	activeQuery := GetActiveOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := activeQuery.setDriverID(driverID); err != nil {
		return GetActiveOrderQuery{}, err
	}

	return activeQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrderQueryIsNotConstructed if validation fails.
func (q GetActiveOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderQueryIsNotConstructed)
}

// DriverID returns the identifier of the driver whose delivery is requested.
func (q GetActiveOrderQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetActiveOrderQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}

// GetActiveOrderQueryResponse represents a driver's in-progress delivery.
// Includes the lifecycle position and the version a subsequent advance
// must be conditioned on.
type GetActiveOrderQueryResponse struct {
	ID              kernel.UUID
	StoreID         kernel.UUID
	Status          order.Status
	PaymentStatus   order.PaymentStatus
	TotalAmount     kernel.Money
	DeliveryFee     kernel.Money
	DeliveryAddress string
	CustomerName    string
	CustomerPhone   string
	Version         int64
}
