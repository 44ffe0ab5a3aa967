package order_test

import (
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Ready))
		assert.Equal(t, 2, int(order.Assigned))
		assert.Equal(t, 3, int(order.PickedUp))
		assert.Equal(t, 4, int(order.Delivered))
	})

	t.Run("should be totally ordered by lifecycle progression", func(t *testing.T) {
		assert.Less(t, order.Ready, order.Assigned)
		assert.Less(t, order.Assigned, order.PickedUp)
		assert.Less(t, order.PickedUp, order.Delivered)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Ready,
			order.Assigned,
			order.PickedUp,
			order.Delivered,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out-of-range statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(5), order.Status(100)} {
			err := status.Validate()

			require.Error(t, err)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:     "Unknown",
		order.Ready:       "Ready",
		order.Assigned:    "Assigned",
		order.PickedUp:    "PickedUp",
		order.Delivered:   "Delivered",
		order.Status(42):  "Unknown",
		order.Status(-10): "Unknown",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse valid status names", func(t *testing.T) {
		for _, name := range []string{"Ready", "Assigned", "PickedUp", "Delivered"} {
			status, err := order.StatusFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "Unknown", "ready", "out_for_delivery"} {
			_, err := order.StatusFromString(name)

			require.Error(t, err)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Claim(t *testing.T) {
	t.Run("should transition Ready to Assigned", func(t *testing.T) {
		newStatus, err := order.Ready.Claim()

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, newStatus)
	})

	t.Run("should reject claim from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Assigned, order.PickedUp, order.Delivered} {
			_, err := status.Claim()

			require.Error(t, err, "claim from %s should fail", status)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Pickup(t *testing.T) {
	t.Run("should transition Assigned to PickedUp", func(t *testing.T) {
		newStatus, err := order.Assigned.Pickup()

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, newStatus)
	})

	t.Run("should reject pickup from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Ready, order.PickedUp, order.Delivered} {
			_, err := status.Pickup()

			require.Error(t, err, "pickup from %s should fail", status)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("should transition PickedUp to Delivered", func(t *testing.T) {
		newStatus, err := order.PickedUp.Deliver()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, newStatus)
	})

	t.Run("should reject deliver from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Ready, order.Assigned, order.Delivered} {
			_, err := status.Deliver()

			require.Error(t, err, "deliver from %s should fail", status)
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
	assert.False(t, order.Assigned.IsTerminal())
	assert.False(t, order.PickedUp.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, order.Assigned.IsActive())
	assert.True(t, order.PickedUp.IsActive())
	assert.False(t, order.Ready.IsActive())
	assert.False(t, order.Delivered.IsActive())
}

func TestStatus_ValidateCanHaveDriver(t *testing.T) {
	t.Run("Ready order must not have a driver", func(t *testing.T) {
		require.NoError(t, order.Ready.ValidateCanHaveDriver(false))
		require.Error(t, order.Ready.ValidateCanHaveDriver(true))
	})

	t.Run("later statuses must have a driver", func(t *testing.T) {
		for _, status := range []order.Status{order.Assigned, order.PickedUp, order.Delivered} {
			require.NoError(t, status.ValidateCanHaveDriver(true))
			require.Error(t, status.ValidateCanHaveDriver(false))
		}
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := order.NewInvalidTransitionError(order.Ready, order.PickedUp)

	assert.Equal(t, "invalid order status transition: Ready -> PickedUp", err.Error())
	require.ErrorIs(t, err, order.ErrInvalidTransition)
}
