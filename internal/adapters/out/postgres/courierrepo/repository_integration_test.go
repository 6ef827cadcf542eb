package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CourierRepositoryIntegrationTestSuite exercises the candidate queries and
// the capacity reservation against a real PostgreSQL database.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&courierrepo.CourierZoneDTO{},
	))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE courier_zones, couriers").Error)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, nil)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedCourier inserts a courier row directly; courier onboarding is owned by
// another system, the engine only reads and updates.
func (suite *CourierRepositoryIntegrationTestSuite) seedCourier(name string, active, online, available bool, activeOrders, maxCapacity int) uuid.UUID {
	rate := 0.8
	avg := 25

	dto := courierrepo.CourierDTO{
		ID:       uuid.New(),
		Name:     name,
		IsActive: active,
		Position: courierrepo.PositionDTO{
			Lat: 18.52,
			Lng: 73.85,
		},
		IsOnline:         online,
		IsAvailable:      available,
		ActiveOrderCount: activeOrders,
		MaxCapacity:      maxCapacity,
		AcceptanceRate:   &rate,
		AvgDeliveryTime:  &avg,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *CourierRepositoryIntegrationTestSuite) linkZone(courierID, zoneID uuid.UUID) {
	link := courierrepo.CourierZoneDTO{CourierID: courierID, ZoneID: zoneID}
	suite.Require().NoError(suite.db.Create(&link).Error)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_ExistingCourier_RestoresAggregate() {
	ctx := context.Background()
	rawID := suite.seedCourier("Asha", true, true, true, 1, 3)

	id, err := kernel.UUIDFromBytes(rawID[:])
	suite.Require().NoError(err)

	found, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.Equal("Asha", found.Name())
	suite.Equal(1, found.ActiveOrderCount())
	suite.Equal(3, found.MaxCapacity())
	suite.InDelta(0.8, found.AcceptanceRate(), 1e-9)
	suite.Equal(25, found.AvgDeliveryTime())
	suite.True(found.IsEligible())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_MissingCourier_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Contains(err.Error(), "not found")
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NullPerformanceColumns_AppliesDefaults() {
	ctx := context.Background()

	dto := courierrepo.CourierDTO{
		ID:          uuid.New(),
		Name:        "Rookie",
		IsActive:    true,
		Position:    courierrepo.PositionDTO{Lat: 18.52, Lng: 73.85},
		IsOnline:    true,
		IsAvailable: true,
		MaxCapacity: 2,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	suite.Require().NoError(err)

	found, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.InDelta(courier.DefaultAcceptanceRate, found.AcceptanceRate(), 1e-9)
	suite.Equal(courier.DefaultAvgDeliveryTime, found.AvgDeliveryTime())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllAvailable_FiltersIneligible() {
	suite.seedCourier("Eligible", true, true, true, 0, 2)
	suite.seedCourier("Offline", true, false, true, 0, 2)
	suite.seedCourier("Inactive", false, true, true, 0, 2)
	suite.seedCourier("Busy", true, true, false, 0, 2)
	suite.seedCourier("Full", true, true, true, 2, 2)

	couriers, err := suite.repository.GetAllAvailable(context.Background())
	suite.Require().NoError(err)

	suite.Require().Len(couriers, 1)
	suite.Equal("Eligible", couriers[0].Name())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAvailableInZone_FiltersByCoverage() {
	zoneID := uuid.New()
	otherZoneID := uuid.New()

	inZone := suite.seedCourier("InZone", true, true, true, 0, 2)
	suite.linkZone(inZone, zoneID)

	elsewhere := suite.seedCourier("Elsewhere", true, true, true, 0, 2)
	suite.linkZone(elsewhere, otherZoneID)

	// Covers the zone but fails the eligibility predicate
	offline := suite.seedCourier("OfflineInZone", true, false, true, 0, 2)
	suite.linkZone(offline, zoneID)

	id, err := kernel.UUIDFromBytes(zoneID[:])
	suite.Require().NoError(err)

	couriers, err := suite.repository.GetAvailableInZone(context.Background(), id)
	suite.Require().NoError(err)

	suite.Require().Len(couriers, 1)
	suite.Equal("InZone", couriers[0].Name())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestReserveCapacity_IncrementsWorkload() {
	ctx := context.Background()
	rawID := suite.seedCourier("Asha", true, true, true, 0, 2)

	id, err := kernel.UUIDFromBytes(rawID[:])
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.ReserveCapacity(ctx, id))
	suite.Require().NoError(suite.repository.ReserveCapacity(ctx, id))

	var dto courierrepo.CourierDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", rawID).Error)
	suite.Equal(2, dto.ActiveOrderCount)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestReserveCapacity_AtCapacity_Fails() {
	ctx := context.Background()
	rawID := suite.seedCourier("Full", true, true, true, 2, 2)

	id, err := kernel.UUIDFromBytes(rawID[:])
	suite.Require().NoError(err)

	err = suite.repository.ReserveCapacity(ctx, id)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "not found")

	// The workload stays where it was
	var dto courierrepo.CourierDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", rawID).Error)
	suite.Equal(2, dto.ActiveOrderCount)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsWorkload() {
	ctx := context.Background()
	rawID := suite.seedCourier("Asha", true, true, true, 0, 3)

	id, err := kernel.UUIDFromBytes(rawID[:])
	suite.Require().NoError(err)

	aggregate, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.TakeOrder())

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	reloaded, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(1, reloaded.ActiveOrderCount())
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
