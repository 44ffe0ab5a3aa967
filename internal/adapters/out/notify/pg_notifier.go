package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// DefaultChannel is the PostgreSQL notification channel order change events
// travel on.
const DefaultChannel = "order_changes"

// changeEventDTO is the wire format for events on the notification channel.
type changeEventDTO struct {
	OrderID       string  `json:"order_id"`
	Status        int     `json:"status"`
	PaymentStatus int     `json:"payment_status"`
	DriverID      *string `json:"driver_id"`
	Version       int64   `json:"version"`
}

// PgNotifier publishes order change events through PostgreSQL NOTIFY after
// delivering them to the local broker. Local subscribers see the event
// immediately; other instances receive it through their LISTEN connection.
// The broker's version watermark makes the echoed redelivery a no-op.
//
// Publication failures are logged and swallowed: the state change is already
// committed, and clients that miss an event recover by re-reading.
type PgNotifier struct {
	db      *gorm.DB
	broker  *Broker
	channel string
	logger  *slog.Logger
}

// NewPgNotifier creates a notifier publishing on the given channel.
func NewPgNotifier(db *gorm.DB, broker *Broker, channel string, logger *slog.Logger) *PgNotifier {
	return &PgNotifier{
		db:      db,
		broker:  broker,
		channel: channel,
		logger:  logger.With("component", "pg_notifier"),
	}
}

// Publish delivers the event locally and broadcasts it via pg_notify.
func (n *PgNotifier) Publish(ctx context.Context, event order.ChangedEvent) {
	n.broker.Publish(ctx, event)

	payload, err := json.Marshal(toDTO(event))
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to encode change event",
			"order_id", event.OrderID.String(), "error", err)
		return
	}

	if err := n.db.WithContext(ctx).
		Exec("SELECT pg_notify(?, ?)", n.channel, string(payload)).Error; err != nil {
		n.logger.ErrorContext(ctx, "Failed to broadcast change event",
			"order_id", event.OrderID.String(), "error", err)
	}
}

func toDTO(event order.ChangedEvent) changeEventDTO {
	var driverID *string
	if event.DriverID != nil {
		s := event.DriverID.String()
		driverID = &s
	}

	return changeEventDTO{
		OrderID:       event.OrderID.String(),
		Status:        int(event.Status),
		PaymentStatus: int(event.PaymentStatus),
		DriverID:      driverID,
		Version:       event.Version,
	}
}
