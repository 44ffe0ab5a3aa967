package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &driverrepo.DriverDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, drivers").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.DriverRepository(), "First instance should provide driver repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
	suite.NotNil(uow2.DriverRepository(), "Second instance should provide driver repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_ClaimWorkflow tests the complete delivery lifecycle involving
// both aggregates and conditional writes within transactions.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClaimWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	testOrder := createTestOrder(suite.T())
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	testDriver := createTestDriver(suite.T())
	err = uow.DriverRepository().Add(ctx, testDriver)
	suite.Require().NoError(err)

	expectedVersion := testOrder.Version()
	err = testOrder.Claim(testDriver.ID())
	suite.Require().NoError(err)
	err = uow.OrderRepository().UpdateConditional(ctx, testOrder, expectedVersion)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Pickup and deliver in follow-up transactions
	for _, target := range []order.Status{order.PickedUp, order.Delivered} {
		stepUow := suite.factory.Create()
		err = stepUow.Begin(ctx)
		suite.Require().NoError(err)

		current, getErr := stepUow.OrderRepository().Get(ctx, testOrder.ID())
		suite.Require().NoError(getErr)

		expected := current.Version()
		if target == order.PickedUp {
			err = current.Pickup(testDriver.ID())
		} else {
			err = current.Deliver(testDriver.ID())
		}
		suite.Require().NoError(err)

		err = stepUow.OrderRepository().UpdateConditional(ctx, current, expected)
		suite.Require().NoError(err)
		err = stepUow.Commit(ctx)
		suite.Require().NoError(err)
	}

	newUow := suite.factory.Create()
	finalOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, finalOrder.Status())
	suite.Equal(order.PaymentCollected, finalOrder.PaymentStatus())
	suite.Require().NotNil(finalOrder.Driver())
	suite.True(finalOrder.Driver().IsEqual(testDriver.ID()))
	suite.Equal(int64(4), finalOrder.Version())
}

// TestUnitOfWork_ConditionalUpdateConflict verifies that of two writers working
// from the same order snapshot only the first conditional write succeeds.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConditionalUpdateConflict() {
	ctx := context.Background()

	testOrder := createTestOrder(suite.T())
	winner := createTestDriver(suite.T())
	loser := createTestDriver(suite.T())

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.DriverRepository().Add(ctx, winner))
	suite.Require().NoError(setupUow.DriverRepository().Add(ctx, loser))

	// Both claimants load the same committed snapshot
	uow1 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	snapshot1, err := uow1.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	uow2 := suite.factory.Create()
	suite.Require().NoError(uow2.Begin(ctx))
	snapshot2, err := uow2.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// First claim commits
	expected1 := snapshot1.Version()
	suite.Require().NoError(snapshot1.Claim(winner.ID()))
	suite.Require().NoError(uow1.OrderRepository().UpdateConditional(ctx, snapshot1, expected1))
	suite.Require().NoError(uow1.Commit(ctx))

	// Second claim conditioned on the stale version must fail
	expected2 := snapshot2.Version()
	suite.Require().NoError(snapshot2.Claim(loser.ID()))
	err = uow2.OrderRepository().UpdateConditional(ctx, snapshot2, expected2)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionConflict)
	suite.Require().NoError(uow2.Rollback(ctx))

	// The winner's assignment is the only one visible
	finalUow := suite.factory.Create()
	finalOrder, err := finalUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, finalOrder.Status())
	suite.Require().NotNil(finalOrder.Driver())
	suite.True(finalOrder.Driver().IsEqual(winner.ID()))
	suite.Equal(int64(2), finalOrder.Version())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())
	testDriver := createTestDriver(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.DriverRepository().Add(ctx, testDriver)
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = uow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().Error(err, "Driver should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder(suite.T())
	order2 := createTestOrder(suite.T())

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// createTestOrder creates a valid Ready order for testing purposes.
func createTestOrder(t *testing.T) *order.Order {
	t.Helper()
	total, err := kernel.NewMoney(12550, "MAD")
	if err != nil {
		t.Fatal(err)
	}
	fee, err := kernel.NewMoney(1500, "MAD")
	if err != nil {
		t.Fatal(err)
	}
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		total, fee,
		"12 Rue des Fleurs", "Amine", "+212600000000",
	)
	if err != nil {
		t.Fatal(err)
	}
	return testOrder
}

// createTestDriver creates a valid driver for testing purposes.
func createTestDriver(t *testing.T) *driver.Driver {
	t.Helper()
	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Test Driver", "+212611111111")
	if err != nil {
		t.Fatal(err)
	}
	return testDriver
}
