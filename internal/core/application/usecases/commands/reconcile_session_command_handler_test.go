package commands_test

import (
	"testing"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/session"
	"settlement/internal/core/domain/model/settlement"
	"settlement/internal/core/domain/services"
	"settlement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// dispatchedSession builds a session of n COD orders (100,000 each) with
// 25,000 fee snapshots, already handed to the carrier.
func dispatchedSession(t *testing.T, carrierID kernel.UUID, n int) *session.DispatchSession {
	t.Helper()
	sess := openSession(t, carrierID, make([]string, n)...)
	for _, o := range sess.Orders() {
		require.NoError(t, o.SnapshotFee(kernel.NewMoneyFromInt(25_000), ""))
	}
	require.NoError(t, sess.MarkDispatched(time.Now()))
	return sess
}

func allDelivered(sess *session.DispatchSession) []services.OrderOutcome {
	outcomes := make([]services.OrderOutcome, 0, sess.TotalOrders())
	for _, o := range sess.Orders() {
		outcomes = append(outcomes, services.OrderOutcome{OrderID: o.OrderID(), Delivered: true})
	}
	return outcomes
}

func TestReconcileSessionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	c := testCarrier(t)
	sess := dispatchedSession(t, c.ID(), 10)
	cmd, err := commands.NewReconcileSessionCommand(
		sess.ID(), allDelivered(sess), kernel.NewMoneyFromInt(1_000_000), "")
	require.NoError(t, err)

	var created *settlement.Settlement
	var movements []*ledger.Movement

	sessionRepo := new(MockSessionRepository)
	carrierRepo := new(MockCarrierRepository)
	settlementRepo := new(MockSettlementRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockReconcileUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once(),
		uow.On("CarrierRepository").Return(carrierRepo).Once(),
		carrierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		settlementRepo.On("CountByCarrierAndDate", mock.Anything, c.ID(), sess.DispatchDate()).
			Return(1, nil).Once(),
		settlementRepo.On("Add", mock.Anything, mock.AnythingOfType("*settlement.Settlement")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*settlement.Settlement)
			}).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Add", mock.Anything, mock.AnythingOfType("*ledger.Movement")).
			Run(func(args mock.Arguments) {
				movements = append(movements, args.Get(1).(*ledger.Movement))
			}).Return(nil).Times(3),
		sessionRepo.On("UpdateGuarded", mock.Anything, sess, session.Dispatched).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileSessionCommandHandler(factory, services.NewReconciler())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Same(t, created, result)
	assert.Equal(t, "SPE-"+sess.DispatchDate().Format("20060102")+"-002", created.Code())
	assert.Equal(t, settlement.PendingPayment, created.Status())
	totals := created.Totals()
	assert.Equal(t, 10, totals.TotalDelivered)
	assert.True(t, totals.NetReceivable.IsEqual(kernel.NewMoneyFromInt(750_000)))
	assert.False(t, totals.HasDiscrepancy)

	require.Len(t, movements, 3)
	byType := map[ledger.MovementType]*ledger.Movement{}
	for _, m := range movements {
		byType[m.Type()] = m
		require.NotNil(t, m.SettlementID())
		assert.True(t, m.SettlementID().IsEqual(created.ID()))
	}
	assert.True(t, byType[ledger.CODCollected].Amount().IsEqual(kernel.NewMoneyFromInt(1_000_000)))
	assert.True(t, byType[ledger.DeliveryFee].Amount().IsEqual(kernel.NewMoneyFromInt(-250_000)))
	assert.True(t, byType[ledger.FailedFee].Amount().IsZero())

	assert.Equal(t, session.Reconciled, sess.Status())
}

func TestReconcileSessionCommandHandler_Handle_SessionNotDispatched(t *testing.T) {
	ctx := t.Context()
	c := testCarrier(t)
	sess := openSession(t, c.ID(), "Bogotá")
	cmd, err := commands.NewReconcileSessionCommand(
		sess.ID(), allDelivered(sess), kernel.NewMoneyFromInt(100_000), "")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	uow := new(MockReconcileUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileSessionCommandHandler(factory, services.NewReconciler())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestReconcileSessionCommandHandler_Handle_MissingFailureReason(t *testing.T) {
	ctx := t.Context()
	c := testCarrier(t)
	sess := dispatchedSession(t, c.ID(), 2)
	outcomes := allDelivered(sess)
	outcomes[1].Delivered = false // no failure reason

	cmd, err := commands.NewReconcileSessionCommand(
		sess.ID(), outcomes, kernel.NewMoneyFromInt(100_000), "")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	carrierRepo := new(MockCarrierRepository)
	uow := new(MockReconcileUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once(),
		uow.On("CarrierRepository").Return(carrierRepo).Once(),
		carrierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileSessionCommandHandler(factory, services.NewReconciler())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, session.Dispatched, sess.Status())
	uow.AssertNotCalled(t, "SettlementRepository")
}

func TestReconcileSessionCommandHandler_Handle_AutoSettlesTinyNet(t *testing.T) {
	ctx := t.Context()
	c := testCarrier(t)
	// One order: collected exactly matches the fees, net receivable 0.
	sess := openSession(t, c.ID(), "Bogotá")
	for _, o := range sess.Orders() {
		require.NoError(t, o.SnapshotFee(kernel.NewMoneyFromInt(100_000), ""))
	}
	require.NoError(t, sess.MarkDispatched(time.Now()))

	cmd, err := commands.NewReconcileSessionCommand(
		sess.ID(), allDelivered(sess), kernel.NewMoneyFromInt(100_000), "")
	require.NoError(t, err)

	var created *settlement.Settlement

	sessionRepo := new(MockSessionRepository)
	carrierRepo := new(MockCarrierRepository)
	settlementRepo := new(MockSettlementRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockReconcileUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once(),
		uow.On("CarrierRepository").Return(carrierRepo).Once(),
		carrierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		settlementRepo.On("CountByCarrierAndDate", mock.Anything, c.ID(), sess.DispatchDate()).
			Return(0, nil).Once(),
		settlementRepo.On("Add", mock.Anything, mock.AnythingOfType("*settlement.Settlement")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*settlement.Settlement)
			}).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Add", mock.Anything, mock.AnythingOfType("*ledger.Movement")).
			Return(nil).Times(3),
		sessionRepo.On("UpdateGuarded", mock.Anything, sess, session.Dispatched).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileSessionCommandHandler(factory, services.NewReconciler())
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, settlement.Settled, created.Status())
	assert.Equal(t, session.Settled, sess.Status())
}

func TestReconcileSessionCommandHandler_Handle_DuplicateSettlementCode(t *testing.T) {
	ctx := t.Context()
	c := testCarrier(t)
	sess := dispatchedSession(t, c.ID(), 1)
	cmd, err := commands.NewReconcileSessionCommand(
		sess.ID(), allDelivered(sess), kernel.NewMoneyFromInt(100_000), "")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	carrierRepo := new(MockCarrierRepository)
	settlementRepo := new(MockSettlementRepository)
	uow := new(MockReconcileUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(sessionRepo).Once(),
		sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once(),
		uow.On("CarrierRepository").Return(carrierRepo).Once(),
		carrierRepo.On("Get", mock.Anything, c.ID()).Return(c, nil).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		settlementRepo.On("CountByCarrierAndDate", mock.Anything, c.ID(), sess.DispatchDate()).
			Return(0, nil).Once(),
		settlementRepo.On("Add", mock.Anything, mock.AnythingOfType("*settlement.Settlement")).
			Return(errs.NewConflictError("code", "settlement code already exists")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReconcileUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileSessionCommandHandler(factory, services.NewReconciler())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
