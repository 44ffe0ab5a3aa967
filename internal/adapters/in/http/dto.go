package http

import (
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// ClaimOrderRequest identifies the driver attempting to claim an order.
type ClaimOrderRequest struct {
	DriverID string `json:"driver_id"`
}

// AdvanceOrderRequest asks to move an order to the given lifecycle status
// on behalf of a driver.
type AdvanceOrderRequest struct {
	DriverID     string `json:"driver_id"`
	TargetStatus string `json:"target_status"`
}

// CreateOrderRequest registers a new delivery order for a store.
type CreateOrderRequest struct {
	StoreID         string `json:"store_id"`
	TotalAmount     int64  `json:"total_amount"`
	DeliveryFee     int64  `json:"delivery_fee"`
	Currency        string `json:"currency"`
	DeliveryAddress string `json:"delivery_address"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
}

// CreateDriverRequest registers a new driver.
type CreateDriverRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AvailableOrder is a claimable order as shown in the ready pool.
type AvailableOrder struct {
	ID              string `json:"id"`
	StoreID         string `json:"store_id"`
	TotalAmount     int64  `json:"total_amount"`
	DeliveryFee     int64  `json:"delivery_fee"`
	Currency        string `json:"currency"`
	DeliveryAddress string `json:"delivery_address"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	Version         int64  `json:"version"`
}

// ActiveOrder is a driver's in-progress delivery, including its lifecycle
// position and current version.
type ActiveOrder struct {
	ID              string `json:"id"`
	StoreID         string `json:"store_id"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	TotalAmount     int64  `json:"total_amount"`
	DeliveryFee     int64  `json:"delivery_fee"`
	Currency        string `json:"currency"`
	DeliveryAddress string `json:"delivery_address"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	Version         int64  `json:"version"`
}

// OrderState is the snapshot of an order returned after a claim or an
// advance succeeds.
type OrderState struct {
	ID            string  `json:"id"`
	StoreID       string  `json:"store_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	DriverID      *string `json:"driver_id"`
	Version       int64   `json:"version"`
}

// DriverSession combines everything a driver's home screen needs: the
// driver profile, the delivery in progress (if any) and the claimable pool.
type DriverSession struct {
	DriverID        string           `json:"driver_id"`
	DriverName      string           `json:"driver_name"`
	DriverPhone     string           `json:"driver_phone"`
	ActiveOrder     *ActiveOrder     `json:"active_order"`
	AvailableOrders []AvailableOrder `json:"available_orders"`
}

func orderToResponse(o *order.Order) OrderState {
	response := OrderState{
		ID:            o.ID().String(),
		StoreID:       o.StoreID().String(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Version:       o.Version(),
	}
	if driver := o.Driver(); driver != nil {
		id := driver.String()
		response.DriverID = &id
	}
	return response
}

func activeOrderToResponse(active queries.GetActiveOrderQueryResponse) ActiveOrder {
	return ActiveOrder{
		ID:              active.ID.String(),
		StoreID:         active.StoreID.String(),
		Status:          active.Status.String(),
		PaymentStatus:   active.PaymentStatus.String(),
		TotalAmount:     active.TotalAmount.Amount(),
		DeliveryFee:     active.DeliveryFee.Amount(),
		Currency:        active.TotalAmount.Currency(),
		DeliveryAddress: active.DeliveryAddress,
		CustomerName:    active.CustomerName,
		CustomerPhone:   active.CustomerPhone,
		Version:         active.Version,
	}
}
