package settlementrepo_test

import (
	"context"
	"testing"
	"time"

	"settlement/internal/adapters/out/postgres/settlementrepo"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/settlement"
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

// SettlementRepositoryIntegrationTestSuite verifies settlement persistence
// behavior against a real PostgreSQL instance, including the unique code
// constraint that keeps concurrent reconciliations from minting duplicates.
type SettlementRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *settlementrepo.GormSettlementRepository
	tracker    *MockAggregateTracker
}

func (suite *SettlementRepositoryIntegrationTestSuite) SetupSuite() {
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

	// TranslateError maps the unique index violation to gorm.ErrDuplicatedKey,
	// which the repository turns into a ConflictError.
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&settlementrepo.SettlementDTO{}))
}

func (suite *SettlementRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE settlements").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = settlementrepo.NewGormSettlementRepository(suite.db, suite.tracker)
}

func (suite *SettlementRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SettlementRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsTotals() {
	ctx := context.Background()

	original := suite.createTestSettlement("SPE-20250310-001", kernel.NewUUID())
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.Code(), retrieved.Code())
	suite.Equal(original.CarrierID(), retrieved.CarrierID())
	suite.Equal(original.SessionID(), retrieved.SessionID())
	suite.Equal(settlement.PendingPayment, retrieved.Status())

	originalTotals := original.Totals()
	retrievedTotals := retrieved.Totals()
	suite.Equal(originalTotals.TotalOrders, retrievedTotals.TotalOrders)
	suite.Equal(originalTotals.TotalDelivered, retrievedTotals.TotalDelivered)
	suite.Equal(originalTotals.TotalNotDelivered, retrievedTotals.TotalNotDelivered)
	suite.True(originalTotals.CODExpected.IsEqual(retrievedTotals.CODExpected))
	suite.True(originalTotals.CODCollected.IsEqual(retrievedTotals.CODCollected))
	suite.True(originalTotals.CarrierFees.IsEqual(retrievedTotals.CarrierFees))
	suite.True(originalTotals.FailedFees.IsEqual(retrievedTotals.FailedFees))
	suite.True(originalTotals.NetReceivable.IsEqual(retrievedTotals.NetReceivable))
	suite.True(originalTotals.Discrepancy.IsEqual(retrievedTotals.Discrepancy))
	suite.Equal(originalTotals.HasDiscrepancy, retrievedTotals.HasDiscrepancy)
	suite.Equal(originalTotals.DiscrepancyNotes, retrievedTotals.DiscrepancyNotes)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *SettlementRepositoryIntegrationTestSuite) TestAdd_DuplicateCode_ReturnsConflictError() {
	ctx := context.Background()

	first := suite.createTestSettlement("SPE-20250310-001", kernel.NewUUID())
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	duplicate := suite.createTestSettlement("SPE-20250310-001", kernel.NewUUID())
	err := suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)

	var conflictErr *errs.ConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *SettlementRepositoryIntegrationTestSuite) TestUpdate_PaymentProgress_Persisted() {
	ctx := context.Background()

	original := suite.createTestSettlement("SPE-20250310-001", kernel.NewUUID())
	suite.tracker.On("TrackAggregate", original.ID(), original).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	partial, err := kernel.NewMoneyFromString("200000")
	suite.Require().NoError(err)
	suite.Require().NoError(original.ApplyPayment(partial))
	suite.Require().NoError(suite.repository.Update(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(settlement.PendingPayment, retrieved.Status())
	suite.True(partial.IsEqual(retrieved.PaidAmount()))

	expectedOutstanding, err := kernel.NewMoneyFromString("300000")
	suite.Require().NoError(err)
	suite.True(expectedOutstanding.IsEqual(retrieved.Outstanding()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *SettlementRepositoryIntegrationTestSuite) TestGetBySessionID() {
	ctx := context.Background()

	sessionID := kernel.NewUUID()
	original := suite.createTestSettlement("SPE-20250310-001", sessionID)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.GetBySessionID(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Equal(original.ID(), retrieved.ID())

	_, err = suite.repository.GetBySessionID(ctx, kernel.NewUUID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *SettlementRepositoryIntegrationTestSuite) TestCountByCarrierAndDate() {
	ctx := context.Background()

	carrierID := kernel.NewUUID()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := suite.createTestSettlementFor(carrierID, "SPE-20250310-001", date)
	second := suite.createTestSettlementFor(carrierID, "SPE-20250310-002", date)
	otherDay := suite.createTestSettlementFor(carrierID, "SPE-20250311-001", date.AddDate(0, 0, 1))
	otherCarrier := suite.createTestSettlementFor(kernel.NewUUID(), "AND-20250310-001", date)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(4)
	for _, aggregate := range []*settlement.Settlement{first, second, otherDay, otherCarrier} {
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	count, err := suite.repository.CountByCarrierAndDate(ctx, carrierID, date)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *SettlementRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	pending := suite.createTestSettlement("SPE-20250310-001", kernel.NewUUID())

	paid := suite.createTestSettlement("SPE-20250310-002", kernel.NewUUID())
	full, err := kernel.NewMoneyFromString("500000")
	suite.Require().NoError(err)
	suite.Require().NoError(paid.ApplyPayment(full))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, pending))
	suite.Require().NoError(suite.repository.Add(ctx, paid))

	pendingList, err := suite.repository.GetAllInStatus(ctx, settlement.PendingPayment)
	suite.Require().NoError(err)
	suite.Require().Len(pendingList, 1)
	suite.Equal(pending.ID(), pendingList[0].ID())

	paidList, err := suite.repository.GetAllInStatus(ctx, settlement.Paid)
	suite.Require().NoError(err)
	suite.Require().Len(paidList, 1)
	suite.Equal(paid.ID(), paidList[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

// createTestSettlement builds a pending settlement with a 500,000 net receivable.
func (suite *SettlementRepositoryIntegrationTestSuite) createTestSettlement(
	code string, sessionID kernel.UUID,
) *settlement.Settlement {
	aggregate := suite.createTestSettlementFor(kernel.NewUUID(), code,
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	restored, err := settlement.RestoreSettlement(
		aggregate.ID(), aggregate.Code(), aggregate.CarrierID(), sessionID,
		aggregate.Date(), aggregate.Totals(), aggregate.Status(),
		aggregate.PaidAmount(), aggregate.AcknowledgedAt(), aggregate.CreatedAt())
	suite.Require().NoError(err)
	return restored
}

func (suite *SettlementRepositoryIntegrationTestSuite) createTestSettlementFor(
	carrierID kernel.UUID, code string, date time.Time,
) *settlement.Settlement {
	money := func(s string) kernel.Money {
		m, err := kernel.NewMoneyFromString(s)
		suite.Require().NoError(err)
		return m
	}

	totals := settlement.Totals{
		TotalOrders:       10,
		TotalDelivered:    8,
		TotalNotDelivered: 2,
		CODExpected:       money("800000"),
		CODCollected:      money("800000"),
		CarrierFees:       money("275000"),
		FailedFees:        money("25000"),
		NetReceivable:     money("500000"),
		Discrepancy:       money("0"),
	}

	aggregate, err := settlement.NewSettlement(
		kernel.NewUUID(), code, carrierID, kernel.NewUUID(),
		date, totals, time.Now().UTC())
	suite.Require().NoError(err)
	return aggregate
}

func TestSettlementRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementRepositoryIntegrationTestSuite))
}
