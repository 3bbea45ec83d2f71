package commands

import (
	"context"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/payment"
	"settlement/internal/core/domain/model/settlement"
)

// RegisterPaymentCommandHandler records carrier payments.
// Every payment appends exactly one ledger movement whose sign follows the
// direction: money received from the carrier reduces what the carrier owes.
// When the payment targets a settlement, the settlement's paid amount
// advances; a partial amount keeps it pending, the full outstanding amount
// closes it and settles the underlying session.
type RegisterPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewRegisterPaymentCommandHandler creates a handler for payment registration.
func NewRegisterPaymentCommandHandler(uowFactory PaymentUoWFactory) RegisterPaymentCommandHandler {
	return RegisterPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment command.
func (h *RegisterPaymentCommandHandler) Handle(ctx context.Context, cmd RegisterPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	record, err := payment.NewCarrierPayment(
		cmd.PaymentID(), cmd.CarrierID(), cmd.Direction(), cmd.Amount(),
		cmd.Method(), cmd.Reference(), cmd.Notes(), cmd.PaymentDate())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	description := fmt.Sprintf("payment via %s", cmd.Method())

	if cmd.SettlementID() != nil {
		if err = h.applyToSettlement(ctx, uow, record, cmd, now); err != nil {
			return err
		}
		description = fmt.Sprintf("payment via %s, settlement %s", cmd.Method(), record.SettlementID())
	}

	if err = uow.PaymentRepository().Add(ctx, record); err != nil {
		return err
	}

	movement, err := ledger.NewMovement(
		kernel.NewUUID(), cmd.CarrierID(), cmd.Direction().MovementType(),
		cmd.Direction().LedgerAmount(cmd.Amount()), description, now)
	if err != nil {
		return err
	}
	if err = movement.AttachPayment(record.ID()); err != nil {
		return err
	}
	if record.SettlementID() != nil {
		if err = movement.AttachSettlement(*record.SettlementID()); err != nil {
			return err
		}
	}

	if err = uow.LedgerRepository().Add(ctx, movement); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *RegisterPaymentCommandHandler) applyToSettlement(
	ctx context.Context,
	uow PaymentUoW,
	record *payment.CarrierPayment,
	cmd RegisterPaymentCommand,
	now time.Time,
) error {
	settlementRepo := uow.SettlementRepository()
	target, err := settlementRepo.Get(ctx, *cmd.SettlementID())
	if err != nil {
		return err
	}

	if err = record.AttachSettlement(target.ID()); err != nil {
		return err
	}

	if err = target.ApplyPayment(cmd.Amount()); err != nil {
		return err
	}

	if err = settlementRepo.Update(ctx, target); err != nil {
		return err
	}

	if target.Status() != settlement.Paid {
		return nil
	}

	// The settlement closed: advance the session to its terminal state.
	sessionRepo := uow.SessionRepository()
	sess, err := sessionRepo.Get(ctx, target.SessionID())
	if err != nil {
		return err
	}
	if err = sess.MarkSettled(now); err != nil {
		return err
	}

	return sessionRepo.Update(ctx, sess)
}
