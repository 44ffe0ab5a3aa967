package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrderQueryHandler retrieves a driver's in-progress delivery from
// the database. At most one row can match because claims enforce the
// one-active-order rule before committing.
//
// Example:
//
//	handler := NewGetActiveOrderQueryHandler(db)
//	query, _ := NewGetActiveOrderQuery(driverID)
//
//	active, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // nothing in progress, show the available pool
//	}
type GetActiveOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrderQueryHandler creates a handler for active delivery queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrderQueryHandler(db *gorm.DB) GetActiveOrderQueryHandler {
	return GetActiveOrderQueryHandler{db: db}
}

// Handle executes the query for the driver's active order.
// Returns errs.ErrObjectNotFound when the driver has no Assigned or PickedUp
// order.
func (h GetActiveOrderQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrderQuery,
) (GetActiveOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_id,
			status,
			payment_status,
			total_amount,
			total_currency,
			fee_amount,
			fee_currency,
			delivery_address,
			customer_name,
			customer_phone,
			version
		FROM orders
		WHERE driver_id = ? AND status IN (?, ?)
	`, query.DriverID().Bytes(), order.Assigned, order.PickedUp).Row()

	var orderResp GetActiveOrderQueryResponse
	var id, storeID uuid.UUID
	var status, paymentStatus int
	var totalAmount, feeAmount int64
	var totalCurrency, feeCurrency string

	err := row.Scan(
		&id,
		&storeID,
		&status,
		&paymentStatus,
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
		if errors.Is(err, sql.ErrNoRows) {
			return GetActiveOrderQueryResponse{},
				errs.NewObjectNotFoundError("active order", query.DriverID().String())
		}
		return GetActiveOrderQueryResponse{}, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveOrderQueryResponse{}, err
	}
	orderResp.ID = orderID

	orderStoreID, err := kernel.UUIDFromBytes(storeID[:])
	if err != nil {
		return GetActiveOrderQueryResponse{}, err
	}
	orderResp.StoreID = orderStoreID

	orderResp.Status = order.Status(status)
	orderResp.PaymentStatus = order.PaymentStatus(paymentStatus)

	total, err := kernel.NewMoney(totalAmount, totalCurrency)
	if err != nil {
		return GetActiveOrderQueryResponse{}, err
	}
	orderResp.TotalAmount = total

	fee, err := kernel.NewMoney(feeAmount, feeCurrency)
	if err != nil {
		return GetActiveOrderQueryResponse{}, err
	}
	orderResp.DeliveryFee = fee

	return orderResp, nil
}
