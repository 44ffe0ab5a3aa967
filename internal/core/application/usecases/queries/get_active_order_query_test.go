package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrderQuery(t *testing.T) {
	driverID := kernel.NewUUID()

	query, err := queries.NewGetActiveOrderQuery(driverID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.DriverID().IsEqual(driverID))
}

func TestNewGetActiveOrderQuery_EmptyDriverID(t *testing.T) {
	_, err := queries.NewGetActiveOrderQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestGetActiveOrderQuery_DefaultConstructor(t *testing.T) {
	var query queries.GetActiveOrderQuery

	err := query.Validate()

	require.Error(t, err)
	assert.Equal(t, queries.ErrGetActiveOrderQueryIsNotConstructed, err)
}
