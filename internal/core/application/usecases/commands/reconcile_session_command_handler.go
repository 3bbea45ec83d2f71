package commands

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/session"
	"settlement/internal/core/domain/model/settlement"
	"settlement/internal/core/domain/services"
)

// ReconcileSessionCommandHandler closes the loop on a dispatched session.
// In one transaction it validates the reported outcomes, computes the
// settlement totals, creates the settlement record, appends the ledger
// movements and advances the session. The session update is guarded on the
// dispatched status, so of two concurrent reconciliations exactly one wins.
type ReconcileSessionCommandHandler struct {
	uowFactory ReconcileUoWFactory
	reconciler services.Reconciler
}

// NewReconcileSessionCommandHandler creates a handler for session reconciliation.
func NewReconcileSessionCommandHandler(
	uowFactory ReconcileUoWFactory,
	reconciler services.Reconciler,
) ReconcileSessionCommandHandler {
	return ReconcileSessionCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
	}
}

// Handle processes the reconciliation command and returns the settlement it
// produced.
func (h *ReconcileSessionCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileSessionCommand,
) (*settlement.Settlement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	aggregate, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	// Status guard before any outcome is recorded.
	if _, err = aggregate.Status().Reconcile(); err != nil {
		return nil, err
	}

	carrier, err := uow.CarrierRepository().Get(ctx, aggregate.CarrierID())
	if err != nil {
		return nil, err
	}

	if err = h.reconciler.ApplyOutcomes(aggregate, cmd.Outcomes()); err != nil {
		return nil, err
	}

	summary, err := h.reconciler.Calculate(carrier, aggregate, cmd.TotalCollected())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	settlementRepo := uow.SettlementRepository()
	seq, err := settlementRepo.CountByCarrierAndDate(ctx, carrier.ID(), aggregate.DispatchDate())
	if err != nil {
		return nil, err
	}

	code := settlementCode(carrier.Name(), aggregate.DispatchDate(), seq+1)
	record, err := settlement.NewSettlement(
		kernel.NewUUID(), code, carrier.ID(), aggregate.ID(), aggregate.DispatchDate(),
		settlement.Totals{
			TotalOrders:       summary.TotalOrders,
			TotalDelivered:    summary.TotalDelivered,
			TotalNotDelivered: summary.TotalNotDelivered,
			CODExpected:       summary.CODExpected,
			CODCollected:      summary.CODCollected,
			CarrierFees:       summary.DeliveredFees,
			FailedFees:        summary.FailedFees,
			NetReceivable:     summary.NetReceivable,
			Discrepancy:       summary.Discrepancy,
			HasDiscrepancy:    summary.HasDiscrepancy,
			DiscrepancyNotes:  cmd.DiscrepancyNotes(),
		},
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = settlementRepo.Add(ctx, record); err != nil {
		return nil, err
	}

	ledgerRepo := uow.LedgerRepository()
	movements := []struct {
		movementType ledger.MovementType
		amount       kernel.Money
	}{
		{ledger.CODCollected, summary.CODCollected},
		{ledger.DeliveryFee, summary.DeliveredFees.Neg()},
		{ledger.FailedFee, summary.FailedFees.Neg()},
	}
	for _, m := range movements {
		movement, err := ledger.NewMovement(
			kernel.NewUUID(), carrier.ID(), m.movementType, m.amount,
			fmt.Sprintf("settlement %s", code), now)
		if err != nil {
			return nil, err
		}
		if err = movement.AttachSettlement(record.ID()); err != nil {
			return nil, err
		}
		if err = ledgerRepo.Add(ctx, movement); err != nil {
			return nil, err
		}
	}

	if err = aggregate.MarkReconciled(now); err != nil {
		return nil, err
	}
	if record.Status() == settlement.Settled {
		if err = aggregate.MarkSettled(now); err != nil {
			return nil, err
		}
	}

	if err = sessionRepo.UpdateGuarded(ctx, aggregate, session.Dispatched); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// settlementCode builds a human-readable unique code:
// carrier prefix + dispatch date + per-day sequence, e.g. SPE-20250310-002.
func settlementCode(carrierName string, date time.Time, seq int) string {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(carrierName) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			prefix.WriteRune(r)
			if prefix.Len() >= 3 {
				break
			}
		}
	}
	if prefix.Len() == 0 {
		prefix.WriteString("CAR")
	}

	return fmt.Sprintf("%s-%s-%03d", prefix.String(), date.Format("20060102"), seq)
}
