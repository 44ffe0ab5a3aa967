package queries_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStaleAssignmentsQuery(t *testing.T) {
	tests := []struct {
		name      string
		threshold time.Duration
		wantErr   bool
	}{
		{
			name:      "valid threshold",
			threshold: 10 * time.Minute,
			wantErr:   false,
		},
		{
			name:      "zero threshold",
			threshold: 0,
			wantErr:   true,
		},
		{
			name:      "negative threshold",
			threshold: -time.Minute,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewGetStaleAssignmentsQuery(tt.threshold)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, queries.ErrStaleThresholdIsInvalid)
				return
			}

			require.NoError(t, err)
			assert.NoError(t, query.Validate())
			assert.Equal(t, tt.threshold, query.Threshold())
		})
	}
}

func TestGetStaleAssignmentsQuery_DefaultConstructor_FailsValidation(t *testing.T) {
	var query queries.GetStaleAssignmentsQuery

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStaleAssignmentsQueryIsNotConstructed)
}
