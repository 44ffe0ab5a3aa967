package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetReadyOrdersQueryIsNotConstructed = errors.New(
		"GetReadyOrdersQuery must be created via NewGetReadyOrdersQuery constructor",
	)
)

// GetReadyOrdersQuery retrieves the pool of orders available for claiming.
// Returns orders in Ready status with no driver; every driver sees the same
// pool until a claim is committed.
//
// Example:
//
//	query := NewGetReadyOrdersQuery()
//	handler := NewGetReadyOrdersQueryHandler(db)
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available orders: %w", err)
//	}
//
//	fmt.Printf("%d orders available for pickup\n", len(available))
type GetReadyOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetReadyOrdersQuery creates a query to retrieve the available order pool.
// This is a parameterless query that fetches all Ready orders.
func NewGetReadyOrdersQuery() GetReadyOrdersQuery {
	return GetReadyOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetReadyOrdersQueryIsNotConstructed if validation fails.
func (q GetReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyOrdersQueryIsNotConstructed)
}

// GetReadyOrdersQueryResponse represents one claimable order in the pool.
// Carries everything a driver needs to decide whether to take the job,
// plus the version a subsequent claim must be conditioned on.
type GetReadyOrdersQueryResponse struct {
	ID              kernel.UUID
	StoreID         kernel.UUID
	TotalAmount     kernel.Money
	DeliveryFee     kernel.Money
	DeliveryAddress string
	CustomerName    string
	CustomerPhone   string
	Version         int64
}
