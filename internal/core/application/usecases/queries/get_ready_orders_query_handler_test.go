package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetReadyOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetReadyOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetReadyOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetReadyOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) TestHandle_WithMixedStatuses_ReturnsOnlyReady() {
	readyOrders := suite.createReadyOrders(3)
	claimedOrders := suite.createClaimedOrders(2)
	deliveredOrders := suite.createDeliveredOrders(2)

	for _, o := range append(append(readyOrders, claimedOrders...), deliveredOrders...) {
		err := suite.orderRepo.Add(context.Background(), o)
		suite.Require().NoError(err)
	}

	query := queries.NewGetReadyOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}

	for _, o := range readyOrders {
		suite.True(resultIDs[o.ID()], "Order %s should be in results", o.ID())
	}
	for _, o := range append(claimedOrders, deliveredOrders...) {
		suite.False(resultIDs[o.ID()], "Order %s should not be in results", o.ID())
	}
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) TestHandle_MapsAllFields() {
	o := createTestReadyOrder(suite.T())
	err := suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)

	query := queries.NewGetReadyOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	resp := result[0]
	suite.Equal(o.ID(), resp.ID)
	suite.Equal(o.StoreID(), resp.StoreID)
	suite.True(resp.TotalAmount.IsEqual(o.TotalAmount()))
	suite.True(resp.DeliveryFee.IsEqual(o.DeliveryFee()))
	suite.Equal(o.DeliveryAddress(), resp.DeliveryAddress)
	suite.Equal(o.CustomerName(), resp.CustomerName)
	suite.Equal(o.CustomerPhone(), resp.CustomerPhone)
	suite.Equal(int64(1), resp.Version)
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) TestHandle_OrdersAreSortedByID() {
	for range 3 {
		o := createTestReadyOrder(suite.T())
		err := suite.orderRepo.Add(context.Background(), o)
		suite.Require().NoError(err)
	}

	query := queries.NewGetReadyOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)

	for i := range len(result) - 1 {
		suite.Less(result[i].ID.String(), result[i+1].ID.String(),
			"Orders should be sorted by ID: %s should come before %s",
			result[i].ID, result[i+1].ID)
	}
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetReadyOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetReadyOrdersQuery constructor")
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	for range 50 {
		o := createTestReadyOrder(suite.T())
		err := suite.orderRepo.Add(context.Background(), o)
		suite.Require().NoError(err)
	}

	query := queries.NewGetReadyOrdersQuery()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) createReadyOrders(count int) []*order.Order {
	orders := make([]*order.Order, 0, count)
	for range count {
		orders = append(orders, createTestReadyOrder(suite.T()))
	}
	return orders
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) createClaimedOrders(count int) []*order.Order {
	orders := make([]*order.Order, 0, count)
	for range count {
		o := createTestReadyOrder(suite.T())
		err := o.Claim(kernel.NewUUID())
		suite.Require().NoError(err)
		orders = append(orders, o)
	}
	return orders
}

func (suite *GetReadyOrdersQueryHandlerTestSuite) createDeliveredOrders(count int) []*order.Order {
	orders := make([]*order.Order, 0, count)
	for range count {
		o := createTestReadyOrder(suite.T())
		driverID := kernel.NewUUID()
		suite.Require().NoError(o.Claim(driverID))
		suite.Require().NoError(o.Pickup(driverID))
		suite.Require().NoError(o.Deliver(driverID))
		orders = append(orders, o)
	}
	return orders
}

func TestGetReadyOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetReadyOrdersQueryHandlerTestSuite))
}

// mockAggregateTracker is a no-op implementation since we don't need
// aggregate tracking in query tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
	// No-op for query tests
}

// createTestReadyOrder creates a valid Ready order for query tests.
func createTestReadyOrder(t *testing.T) *order.Order {
	t.Helper()
	total, err := kernel.NewMoney(12550, "MAD")
	if err != nil {
		t.Fatal(err)
	}
	fee, err := kernel.NewMoney(1500, "MAD")
	if err != nil {
		t.Fatal(err)
	}
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		total, fee,
		"12 Rue des Fleurs", "Amine", "+212600000000",
	)
	if err != nil {
		t.Fatal(err)
	}
	return o
}
