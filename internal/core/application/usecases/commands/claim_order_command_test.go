package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand(t *testing.T) {
	t.Run("should create command with valid identifiers", func(t *testing.T) {
		orderID := kernel.NewUUID()
		driverID := kernel.NewUUID()

		cmd, err := commands.NewClaimOrderCommand(orderID, driverID)

		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.DriverID().IsEqual(driverID))
		require.NoError(t, cmd.Validate())
	})

	t.Run("should reject invalid order ID", func(t *testing.T) {
		_, err := commands.NewClaimOrderCommand(kernel.UUID{}, kernel.NewUUID())

		require.Error(t, err)
	})

	t.Run("should reject invalid driver ID", func(t *testing.T) {
		_, err := commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.UUID{})

		require.Error(t, err)
	})
}

func TestClaimOrderCommand_Validate(t *testing.T) {
	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.ClaimOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrClaimOrderCommandIsNotConstructed, err)
	})
}
