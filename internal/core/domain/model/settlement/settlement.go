package settlement

import (
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrSettlementIsNotConstructed is returned when using an improperly initialized Settlement.
	ErrSettlementIsNotConstructed = errors.New("Settlement must be created via NewSettlement constructor")
	// ErrCodeIsRequired is returned when creating a settlement without a code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")
	// ErrPaymentAmountIsInvalid is returned when applying a non-positive payment amount.
	ErrPaymentAmountIsInvalid = errs.NewValueIsInvalidError("payment amount must be positive")
)

// autoSettleThreshold: a net receivable below one currency unit is closed
// immediately, no payment step required.
var autoSettleThreshold = decimal.NewFromInt(1)

// Totals is the aggregated outcome of one reconciliation pass. All amounts
// are exact decimals; netReceivable follows the ledger sign convention
// (positive = carrier owes the store).
type Totals struct {
	TotalOrders       int
	TotalDelivered    int
	TotalNotDelivered int
	CODExpected       kernel.Money
	CODCollected      kernel.Money
	CarrierFees       kernel.Money
	FailedFees        kernel.Money
	NetReceivable     kernel.Money
	Discrepancy       kernel.Money
	HasDiscrepancy    bool
	DiscrepancyNotes  string
}

// Settlement is the immutable summary record of one reconciled dispatch
// session. Totals are fixed at creation; only the payment status advances.
type Settlement struct {
	id   kernel.UUID
	code string

	carrierID kernel.UUID
	sessionID kernel.UUID
	date      time.Time

	totals Totals

	status Status

	// paidAmount accumulates payment amounts applied against the net
	// receivable, supporting partial payments.
	paidAmount kernel.Money

	// acknowledgedAt marks the "pending" pseudo-option: the settlement was
	// acknowledged without moving money. Purely informational.
	acknowledgedAt *time.Time

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewSettlement creates a settlement from a reconciliation pass. When the
// absolute net receivable is below one currency unit the settlement is
// created Settled; otherwise PendingPayment.
func NewSettlement(
	id kernel.UUID,
	code string,
	carrierID kernel.UUID,
	sessionID kernel.UUID,
	date time.Time,
	totals Totals,
	createdAt time.Time,
) (*Settlement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, ErrCodeIsRequired
	}
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	status := PendingPayment
	if totals.NetReceivable.Abs().Decimal().LessThan(autoSettleThreshold) {
		status = Settled
	}

	return &Settlement{
		id:         id,
		code:       code,
		carrierID:  carrierID,
		sessionID:  sessionID,
		date:       date,
		totals:     totals,
		status:     status,
		paidAmount: kernel.ZeroMoney(),
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreSettlement reconstructs a settlement from persistent storage.
func RestoreSettlement(
	id kernel.UUID,
	code string,
	carrierID kernel.UUID,
	sessionID kernel.UUID,
	date time.Time,
	totals Totals,
	status Status,
	paidAmount kernel.Money,
	acknowledgedAt *time.Time,
	createdAt time.Time,
) (*Settlement, error) {
	s, err := NewSettlement(id, code, carrierID, sessionID, date, totals, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	s.status = status
	s.paidAmount = paidAmount
	s.acknowledgedAt = acknowledgedAt
	return s, nil
}

// Validate ensures the settlement was created through a constructor.
func (s *Settlement) Validate() error {
	if s == nil {
		return ErrSettlementIsNotConstructed
	}
	return s.guard.Validate(ErrSettlementIsNotConstructed)
}

// ID returns the settlement identifier.
func (s *Settlement) ID() kernel.UUID { return s.id }

// Code returns the unique human-readable settlement code.
func (s *Settlement) Code() string { return s.code }

// CarrierID returns the carrier this settlement belongs to.
func (s *Settlement) CarrierID() kernel.UUID { return s.carrierID }

// SessionID returns the reconciled dispatch session.
func (s *Settlement) SessionID() kernel.UUID { return s.sessionID }

// Date returns the settlement date (the session's dispatch date).
func (s *Settlement) Date() time.Time { return s.date }

// Totals returns the aggregated reconciliation outcome.
func (s *Settlement) Totals() Totals { return s.totals }

// Status returns the payment state.
func (s *Settlement) Status() Status { return s.status }

// PaidAmount returns the payments applied so far.
func (s *Settlement) PaidAmount() kernel.Money { return s.paidAmount }

// AcknowledgedAt returns when the settlement was acknowledged without
// payment, or nil.
func (s *Settlement) AcknowledgedAt() *time.Time { return s.acknowledgedAt }

// CreatedAt returns when the settlement was created.
func (s *Settlement) CreatedAt() time.Time { return s.createdAt }

// Outstanding returns the unpaid remainder of the net receivable's absolute
// value. Zero for Settled and Paid settlements.
func (s *Settlement) Outstanding() kernel.Money {
	if s.status != PendingPayment {
		return kernel.ZeroMoney()
	}
	remaining := s.totals.NetReceivable.Abs().Sub(s.paidAmount)
	if remaining.IsNegative() {
		return kernel.ZeroMoney()
	}
	return remaining
}

// ApplyPayment records a payment amount against the outstanding balance.
// A partial amount keeps the settlement PendingPayment with the remainder
// still outstanding; covering the full balance advances it to Paid.
// Fails with Conflict when the settlement is not awaiting payment.
func (s *Settlement) ApplyPayment(amount kernel.Money) error {
	if !amount.IsPositive() {
		return ErrPaymentAmountIsInvalid
	}
	if s.status != PendingPayment {
		return errs.NewConflictError("settlement",
			fmt.Sprintf("status is %s, expected pending_payment", s.status))
	}

	s.paidAmount = s.paidAmount.Add(amount)
	if !s.paidAmount.LessThan(s.totals.NetReceivable.Abs()) {
		s.status = Paid
	}
	return nil
}

// Acknowledge marks the settlement as acknowledged without moving money.
// This is a status marker only; it has no ledger effect and does not change
// the payment status. Fails with Conflict on terminal settlements.
func (s *Settlement) Acknowledge(now time.Time) error {
	if s.status.IsTerminal() {
		return errs.NewConflictError("settlement",
			fmt.Sprintf("status is %s, nothing to acknowledge", s.status))
	}
	s.acknowledgedAt = &now
	return nil
}
