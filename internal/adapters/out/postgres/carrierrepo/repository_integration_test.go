package carrierrepo_test

import (
	"context"
	"testing"
	"time"

	"settlement/internal/adapters/out/postgres/carrierrepo"
	"settlement/internal/core/domain/model/carrier"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CarrierRepositoryIntegrationTestSuite verifies carrier persistence behavior
// against a real PostgreSQL instance.
type CarrierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *carrierrepo.GormCarrierRepository
	tracker    *MockAggregateTracker
}

func (suite *CarrierRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&carrierrepo.CarrierDTO{},
		&carrierrepo.ZoneDTO{},
	))
}

func (suite *CarrierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carrier_zones, carriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = carrierrepo.NewGormCarrierRepository(suite.db, suite.tracker)
}

func (suite *CarrierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestAdd_ValidCarrier_Success() {
	ctx := context.Background()

	aggregate := suite.createTestCarrier("Speedy Logistics")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.assertCarrierCount(1)
	suite.assertZoneCount(len(aggregate.Zones()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestGet_ExistingCarrier_ReturnsCarrierWithZones() {
	ctx := context.Background()

	original := suite.createTestCarrier("Speedy Logistics")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.Name(), retrieved.Name())
	suite.Equal(original.SettlementType(), retrieved.SettlementType())
	suite.Equal(original.ChargesFailedAttempts(), retrieved.ChargesFailedAttempts())
	suite.Equal(original.FailedAttemptFeePercent(), retrieved.FailedAttemptFeePercent())
	suite.Equal(original.PaymentSchedule(), retrieved.PaymentSchedule())

	suite.Require().Len(retrieved.Zones(), len(original.Zones()))
	for _, originalZone := range original.Zones() {
		retrievedZone, zoneErr := retrieved.ZoneByID(originalZone.ID())
		suite.Require().NoError(zoneErr)
		suite.Equal(originalZone.Name(), retrievedZone.Name())
		suite.Equal(originalZone.Code(), retrievedZone.Code())
		suite.True(originalZone.Rate().IsEqual(retrievedZone.Rate()))
		suite.Equal(originalZone.IsActive(), retrievedZone.IsActive())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestGet_NonExistentCarrier_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestUpdate_ZoneRateChange_Persisted() {
	ctx := context.Background()

	aggregate := suite.createTestCarrier("Speedy Logistics")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	zone := aggregate.Zones()[0]
	newRate, err := kernel.NewMoneyFromString("18000")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.UpdateZone(zone.ID(), zone.Name(), zone.Code(), newRate, zone.IsActive()))

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	retrievedZone, err := retrieved.ZoneByID(zone.ID())
	suite.Require().NoError(err)
	suite.True(newRate.IsEqual(retrievedZone.Rate()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestUpdate_RemovedZone_DeletedFromStorage() {
	ctx := context.Background()

	aggregate := suite.createTestCarrier("Speedy Logistics")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	removedZoneID := aggregate.Zones()[0].ID()
	suite.Require().NoError(aggregate.RemoveZone(removedZoneID))

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(retrieved.Zones(), 1)

	_, err = retrieved.ZoneByID(removedZoneID)
	suite.Require().Error(err)

	suite.assertZoneCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CarrierRepositoryIntegrationTestSuite) TestGetAll_ReturnsCarriersSortedByName() {
	ctx := context.Background()

	first := suite.createTestCarrier("Andes Express")
	second := suite.createTestCarrier("Speedy Logistics")

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.tracker.On("TrackAggregate", second.ID(), second).Once()

	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, first))

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(all, 2)
	suite.Equal("Andes Express", all[0].Name())
	suite.Equal("Speedy Logistics", all[1].Name())

	suite.tracker.AssertExpectations(suite.T())
}

// createTestCarrier builds a net-settlement carrier with two zones.
func (suite *CarrierRepositoryIntegrationTestSuite) createTestCarrier(name string) *carrier.Carrier {
	aggregate, err := carrier.NewCarrier(
		kernel.NewUUID(), name, carrier.Net, true, 50, "weekly")
	suite.Require().NoError(err)

	cityRate, err := kernel.NewMoneyFromString("12000")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddZone(kernel.NewUUID(), "Medellín", "MDE", cityRate, true))

	nationalRate, err := kernel.NewMoneyFromString("18500")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddZone(kernel.NewUUID(), "Bogotá", "BOG", nationalRate, true))

	return aggregate
}

func (suite *CarrierRepositoryIntegrationTestSuite) assertCarrierCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&carrierrepo.CarrierDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func (suite *CarrierRepositoryIntegrationTestSuite) assertZoneCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&carrierrepo.ZoneDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestCarrierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CarrierRepositoryIntegrationTestSuite))
}
