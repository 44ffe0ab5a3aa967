package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetDriverSessionQueryIsNotConstructed = errors.New(
		"GetDriverSessionQuery must be created via NewGetDriverSessionQuery constructor",
	)
)

// GetDriverSessionQuery retrieves everything a driver's home screen needs in
// one shot: the driver's identity, the delivery in progress if any, and the
// pool of claimable orders.
//
// Example:
//
//	query, err := NewGetDriverSessionQuery(driverID)
//	if err != nil {
//	    return fmt.Errorf("invalid driver id: %w", err)
//	}
//
//	session, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load session: %w", err)
//	}
//
//	if session.ActiveOrder != nil {
//	    // resume the delivery in progress
//	}
type GetDriverSessionQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverSessionQuery creates a query for a driver's session view.
// Validates the driver identifier.
func NewGetDriverSessionQuery(driverID kernel.UUID) (GetDriverSessionQuery, error) {
	sessionQuery := GetDriverSessionQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := sessionQuery.setDriverID(driverID); err != nil {
		return GetDriverSessionQuery{}, err
	}

	return sessionQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDriverSessionQueryIsNotConstructed if validation fails.
func (q GetDriverSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverSessionQueryIsNotConstructed)
}

// DriverID returns the identifier of the driver whose session is requested.
func (q GetDriverSessionQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetDriverSessionQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}

// GetDriverSessionQueryResponse represents a driver's combined session view.
// ActiveOrder is nil when the driver has no delivery in progress. The
// available pool is always included so a driver finishing a delivery sees
// the next jobs without a second request.
type GetDriverSessionQueryResponse struct {
	DriverID        kernel.UUID
	DriverName      string
	DriverPhone     string
	ActiveOrder     *GetActiveOrderQueryResponse
	AvailableOrders []GetReadyOrdersQueryResponse
}
