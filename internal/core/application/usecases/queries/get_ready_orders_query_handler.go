package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReadyOrdersQueryHandler retrieves the claimable order pool from the database.
// Reads committed state only, so the pool a driver sees is always a consistent
// snapshot; a stale snapshot is resolved at claim time by the version check.
//
// Example:
//
//	handler := NewGetReadyOrdersQueryHandler(db)
//	query := NewGetReadyOrdersQuery()
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get available orders: %v", err)
//	    return err
//	}
type GetReadyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetReadyOrdersQueryHandler creates a handler for available pool queries.
// Requires a GORM database connection for query execution.
func NewGetReadyOrdersQueryHandler(db *gorm.DB) GetReadyOrdersQueryHandler {
	return GetReadyOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all Ready orders.
// Results are sorted by order ID for consistent output.
func (h GetReadyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetReadyOrdersQuery,
) ([]GetReadyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetReadyOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_id,
			total_amount,
			total_currency,
			fee_amount,
			fee_currency,
			delivery_address,
			customer_name,
			customer_phone,
			version
		FROM orders
		WHERE status = ?
		ORDER BY id
	`, order.Ready).Rows()
	if err != nil {
		return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetReadyOrdersQueryResponse
		var id, storeID uuid.UUID
		var totalAmount, feeAmount int64
		var totalCurrency, feeCurrency string

		err = rows.Scan(
			&id,
			&storeID,
			&totalAmount,
			&totalCurrency,
			&feeAmount,
			&feeCurrency,
			&orderResp.DeliveryAddress,
			&orderResp.CustomerName,
			&orderResp.CustomerPhone,
			&orderResp.Version,
		)
		if err != nil {
			return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		orderStoreID, idErr := kernel.UUIDFromBytes(storeID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.StoreID = orderStoreID

		total, moneyErr := kernel.NewMoney(totalAmount, totalCurrency)
		if moneyErr != nil {
			return nil, moneyErr
		}
		orderResp.TotalAmount = total

		fee, moneyErr := kernel.NewMoney(feeAmount, feeCurrency)
		if moneyErr != nil {
			return nil, moneyErr
		}
		orderResp.DeliveryFee = fee

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}

	return orders, nil
}
