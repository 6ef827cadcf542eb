package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite exercises backlog loading and the
// assignment update against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, nil)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedOrder inserts an order row directly; order intake is owned by another
// system, the engine only reads and flips the assignment state.
func (suite *OrderRepositoryIntegrationTestSuite) seedOrder(userName string, source order.Source, status order.Status, createdAt time.Time) uuid.UUID {
	dto := orderrepo.OrderDTO{
		ID:        uuid.New(),
		Address:   "12 MG Road, Pune",
		Landmark:  "Opposite the clock tower",
		UserID:    uuid.New(),
		UserName:  userName,
		Items:     `["dal", "rice"]`,
		Status:    int(status),
		Source:    source.String(),
		CreatedAt: createdAt,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPending_FiltersAndOrdersBacklog() {
	base := time.Now().UTC().Truncate(time.Second)

	suite.seedOrder("Second", order.SourceImmediate, order.Pending, base.Add(time.Minute))
	suite.seedOrder("First", order.SourceImmediate, order.Pending, base)
	suite.seedOrder("Subscription", order.SourceSubscription, order.Pending, base)
	suite.seedOrder("Handled", order.SourceImmediate, order.Assigned, base)

	backlog, err := suite.repository.GetAllPending(context.Background(), order.SourceImmediate)
	suite.Require().NoError(err)

	suite.Require().Len(backlog, 2)
	suite.Equal("First", backlog[0].UserName())
	suite.Equal("Second", backlog[1].UserName())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPending_EmptyBacklog() {
	backlog, err := suite.repository.GetAllPending(context.Background(), order.SourceImmediate)
	suite.Require().NoError(err)
	suite.Empty(backlog)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RestoresAggregate() {
	rawID := suite.seedOrder("Priya", order.SourceImmediate, order.Pending, time.Now().UTC())

	id, err := kernel.UUIDFromBytes(rawID[:])
	suite.Require().NoError(err)

	found, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)

	suite.Equal("Priya", found.UserName())
	suite.Equal("12 MG Road, Pune, Opposite the clock tower", found.FullAddress())
	suite.Equal([]string{"dal", "rice"}, found.Items())
	suite.Equal(order.Pending, found.Status())
	suite.Nil(found.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Contains(err.Error(), "not found")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsAssignment() {
	ctx := context.Background()
	rawID := suite.seedOrder("Priya", order.SourceImmediate, order.Pending, time.Now().UTC())

	id, err := kernel.UUIDFromBytes(rawID[:])
	suite.Require().NoError(err)

	aggregate, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	courierID := kernel.NewUUID()
	zoneID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Assign(courierID, &zoneID))

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	reloaded, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, reloaded.Status())
	suite.Require().NotNil(reloaded.Courier())
	suite.True(reloaded.Courier().IsEqual(courierID))
	suite.Require().NotNil(reloaded.Zone())
	suite.True(reloaded.Zone().IsEqual(zoneID))

	// Intake columns survive the aggregate update untouched
	var dto orderrepo.OrderDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", rawID).Error)
	suite.Equal(order.SourceImmediate.String(), dto.Source)
	suite.False(dto.CreatedAt.IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingRow_ReturnsError() {
	aggregate, err := order.NewOrder(kernel.NewUUID(), "12 MG Road", "", kernel.NewUUID(), "Priya", []string{"dal"})
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), aggregate)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
