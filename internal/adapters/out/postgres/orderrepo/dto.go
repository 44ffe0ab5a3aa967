// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and driver assignment. The version column
// is the optimistic concurrency token guarding every conditional update.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID         uuid.UUID  `gorm:"type:uuid;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	Status          int        `gorm:"index"`
	PaymentStatus   int
	Version         int64
	TotalAmount     MoneyDTO `gorm:"embedded;embeddedPrefix:total_"`
	DeliveryFee     MoneyDTO `gorm:"embedded;embeddedPrefix:fee_"`
	DeliveryAddress string
	CustomerName    string
	CustomerPhone   string
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// MoneyDTO represents an embedded monetary amount within the order table.
// Stores the minor-unit amount alongside its ISO currency code.
type MoneyDTO struct {
	Amount   int64  `gorm:"type:bigint"`
	Currency string `gorm:"type:varchar(3)"`
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional driver assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		StoreID:       aggregate.StoreID().Bytes(),
		DriverID:      driverID,
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		Version:       aggregate.Version(),
		TotalAmount: MoneyDTO{
			Amount:   aggregate.TotalAmount().Amount(),
			Currency: aggregate.TotalAmount().Currency(),
		},
		DeliveryFee: MoneyDTO{
			Amount:   aggregate.DeliveryFee().Amount(),
			Currency: aggregate.DeliveryFee().Currency(),
		},
		DeliveryAddress: aggregate.DeliveryAddress(),
		CustomerName:    aggregate.CustomerName(),
		CustomerPhone:   aggregate.CustomerPhone(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, payment state, and
// driver assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	totalAmount, err := kernel.NewMoney(dto.TotalAmount.Amount, dto.TotalAmount.Currency)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee.Amount, dto.DeliveryFee.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		storeID,
		totalAmount,
		deliveryFee,
		dto.DeliveryAddress,
		dto.CustomerName,
		dto.CustomerPhone,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		driverID,
		dto.Version,
	)
}
