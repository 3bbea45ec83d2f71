package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "settlement/internal/adapters/out/postgres"
	"settlement/internal/adapters/out/postgres/carrierrepo"
	"settlement/internal/adapters/out/postgres/ledgerrepo"
	"settlement/internal/adapters/out/postgres/paymentrepo"
	"settlement/internal/adapters/out/postgres/sessionrepo"
	"settlement/internal/adapters/out/postgres/settlementrepo"
	"settlement/internal/core/domain/model/carrier"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/session"
	"settlement/internal/core/domain/model/settlement"
	"settlement/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM unit of work against a
// real PostgreSQL database, in particular that reconciliation-style writes
// spanning several repositories commit or roll back as one.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&carrierrepo.CarrierDTO{},
		&carrierrepo.ZoneDTO{},
		&sessionrepo.SessionDTO{},
		&sessionrepo.SessionOrderDTO{},
		&ledgerrepo.MovementDTO{},
		&settlementrepo.SettlementDTO{},
		&paymentrepo.PaymentDTO{},
	))

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE carrier_payments, settlements, ledger_movements, session_orders, dispatch_sessions, carrier_zones, carriers").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreate_ProducesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)

	suite.NotNil(uow1.CarrierRepository())
	suite.NotNil(uow1.SessionRepository())
	suite.NotNil(uow1.LedgerRepository())
	suite.NotNil(uow1.SettlementRepository())
	suite.NotNil(uow1.PaymentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated Begin must be a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_ReturnsError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsWritesAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.createTestCarrier()
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, aggregate))

	record := suite.createTestSettlement(aggregate.ID())
	suite.Require().NoError(uow.SettlementRepository().Add(ctx, record))

	movement := suite.createTestMovement(aggregate.ID())
	suite.Require().NoError(movement.AttachSettlement(record.ID()))
	suite.Require().NoError(uow.LedgerRepository().Add(ctx, movement))

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertRowCount(&carrierrepo.CarrierDTO{}, 1)
	suite.assertRowCount(&settlementrepo.SettlementDTO{}, 1)
	suite.assertRowCount(&ledgerrepo.MovementDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.createTestCarrier()
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, aggregate))

	record := suite.createTestSettlement(aggregate.ID())
	suite.Require().NoError(uow.SettlementRepository().Add(ctx, record))

	movement := suite.createTestMovement(aggregate.ID())
	suite.Require().NoError(uow.LedgerRepository().Add(ctx, movement))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertRowCount(&carrierrepo.CarrierDTO{}, 0)
	suite.assertRowCount(&settlementrepo.SettlementDTO{}, 0)
	suite.assertRowCount(&ledgerrepo.MovementDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGuardedSessionAdvance_VisibleAfterCommitOnly() {
	ctx := context.Background()

	// Seed a dispatched session outside any transaction.
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	aggregate := suite.createDispatchedSession()
	suite.Require().NoError(seed.SessionRepository().Add(ctx, aggregate))
	suite.Require().NoError(seed.Commit(ctx))

	// Advance it inside a transaction using the status guard.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	for _, order := range aggregate.Orders() {
		suite.Require().NoError(order.RecordOutcome(session.Delivered, "", false))
	}
	suite.Require().NoError(aggregate.MarkReconciled(time.Now().UTC()))
	suite.Require().NoError(uow.SessionRepository().UpdateGuarded(ctx, aggregate, session.Dispatched))

	// Uncommitted changes must be invisible to other connections.
	var status string
	suite.Require().NoError(suite.db.Raw(
		"SELECT status FROM dispatch_sessions WHERE id = ?", aggregate.ID().Bytes()).Scan(&status).Error)
	suite.Equal(session.Dispatched.String(), status)

	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(suite.db.Raw(
		"SELECT status FROM dispatch_sessions WHERE id = ?", aggregate.ID().Bytes()).Scan(&status).Error)
	suite.Equal(session.Reconciled.String(), status)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestCarrier() *carrier.Carrier {
	aggregate, err := carrier.NewCarrier(
		kernel.NewUUID(), "Speedy Logistics", carrier.Net, true, 50, "weekly")
	suite.Require().NoError(err)

	rate, err := kernel.NewMoneyFromString("12000")
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddZone(kernel.NewUUID(), "Medellín", "MDE", rate, true))

	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) createDispatchedSession() *session.DispatchSession {
	codAmount, err := kernel.NewMoneyFromString("100000")
	suite.Require().NoError(err)

	order, err := session.NewSessionOrder(kernel.NewUUID(), codAmount, false, "Medellín")
	suite.Require().NoError(err)

	aggregate, err := session.NewDispatchSession(
		kernel.NewUUID(), kernel.NewUUID(),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		[]*session.SessionOrder{order}, "")
	suite.Require().NoError(err)

	rate, err := kernel.NewMoneyFromString("12000")
	suite.Require().NoError(err)
	suite.Require().NoError(order.SnapshotFee(rate, "Medellín"))
	suite.Require().NoError(aggregate.MarkDispatched(time.Now().UTC()))

	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestSettlement(carrierID kernel.UUID) *settlement.Settlement {
	money := func(s string) kernel.Money {
		m, err := kernel.NewMoneyFromString(s)
		suite.Require().NoError(err)
		return m
	}

	totals := settlement.Totals{
		TotalOrders:    1,
		TotalDelivered: 1,
		CODExpected:    money("100000"),
		CODCollected:   money("100000"),
		CarrierFees:    money("12000"),
		NetReceivable:  money("88000"),
	}

	record, err := settlement.NewSettlement(
		kernel.NewUUID(), "SPE-20250310-001", carrierID, kernel.NewUUID(),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), totals, time.Now().UTC())
	suite.Require().NoError(err)
	return record
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestMovement(carrierID kernel.UUID) *ledger.Movement {
	amount, err := kernel.NewMoneyFromString("100000")
	suite.Require().NoError(err)

	movement, err := ledger.NewMovement(
		kernel.NewUUID(), carrierID, ledger.CODCollected, amount,
		"settlement SPE-20250310-001", time.Now().UTC())
	suite.Require().NoError(err)
	return movement
}

func (suite *UnitOfWorkIntegrationTestSuite) assertRowCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
