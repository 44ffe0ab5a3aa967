package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()
	total, err := kernel.NewMoney(9900, "MAD")
	require.NoError(t, err)
	fee, err := kernel.NewMoney(0, "MAD")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), total, fee, "addr", "", "")
	require.NoError(t, err)
	return o
}

func TestLifecycle_Apply(t *testing.T) {
	lifecycle := services.NewLifecycle()

	t.Run("should walk the full lifecycle for the owning driver", func(t *testing.T) {
		o := newReadyOrder(t)
		driverID := kernel.NewUUID()

		require.NoError(t, lifecycle.Apply(o, order.Assigned, driverID))
		assert.Equal(t, order.Assigned, o.Status())

		require.NoError(t, lifecycle.Apply(o, order.PickedUp, driverID))
		assert.Equal(t, order.PickedUp, o.Status())

		require.NoError(t, lifecycle.Apply(o, order.Delivered, driverID))
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentCollected, o.PaymentStatus())
	})

	t.Run("should reject skip-ahead request and leave order unmodified", func(t *testing.T) {
		o := newReadyOrder(t)

		err := lifecycle.Apply(o, order.PickedUp, kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("should reject wrong actor as unauthorized", func(t *testing.T) {
		o := newReadyOrder(t)
		owner := kernel.NewUUID()
		require.NoError(t, lifecycle.Apply(o, order.Assigned, owner))

		err := lifecycle.Apply(o, order.PickedUp, kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrUnauthorizedActor)
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("should reject Ready as a transition target", func(t *testing.T) {
		o := newReadyOrder(t)

		err := lifecycle.Apply(o, order.Ready, kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject Unknown target", func(t *testing.T) {
		o := newReadyOrder(t)

		err := lifecycle.Apply(o, order.Unknown, kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject unconstructed order", func(t *testing.T) {
		var o order.Order

		err := lifecycle.Apply(&o, order.Assigned, kernel.NewUUID())

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should reject invalid actor", func(t *testing.T) {
		o := newReadyOrder(t)

		err := lifecycle.Apply(o, order.Assigned, kernel.UUID{})

		require.Error(t, err)
		assert.Equal(t, order.Ready, o.Status())
	})
}
