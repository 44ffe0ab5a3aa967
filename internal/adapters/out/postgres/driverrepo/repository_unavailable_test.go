package driverrepo_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// stubTracker is a no-op tracker; repository calls against a dead store fail
// before tracking happens.
type stubTracker struct{}

func (s *stubTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

func TestDriverRepository_UnreachableStore_ReportsStoreUnavailable(t *testing.T) {
	// Lazy connection to a port nothing listens on; the pq driver only dials
	// on the first statement.
	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{
		DriverName: "postgres",
		DSN:        "host=127.0.0.1 port=1 user=nobody dbname=nowhere sslmode=disable connect_timeout=1",
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	ctx := context.Background()
	repo := driverrepo.NewGormDriverRepository(db, &stubTracker{})

	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Salma", "+212633333333")
	require.NoError(t, err)

	err = repo.Add(ctx, testDriver)
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)

	_, err = repo.Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
}
