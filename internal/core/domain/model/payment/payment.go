package payment

import (
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var (
	// ErrPaymentIsNotConstructed is returned when using an improperly initialized CarrierPayment.
	ErrPaymentIsNotConstructed = errors.New("CarrierPayment must be created via NewCarrierPayment constructor")
	// ErrMethodIsRequired is returned when registering a payment without a method.
	ErrMethodIsRequired = errs.NewValueIsRequiredError("method")
	// ErrAmountIsInvalid is returned when the payment amount is not positive.
	ErrAmountIsInvalid = errs.NewValueIsInvalidError("amount must be positive")
)

// Direction indicates which way the money moved.
type Direction int

const (
	// DirectionUnknown represents an invalid or undefined direction.
	DirectionUnknown Direction = iota

	// FromCarrier is cash the carrier handed to the store (COD remittance).
	FromCarrier

	// ToCarrier is cash the store paid out to the carrier (fees owed).
	ToCarrier
)

func getDirectionStrings() map[Direction]string {
	return map[Direction]string{
		DirectionUnknown: "Unknown",
		FromCarrier:      "from_carrier",
		ToCarrier:        "to_carrier",
	}
}

// DirectionFromString parses a payment direction from its storage form.
func DirectionFromString(s string) (Direction, error) {
	for d, str := range getDirectionStrings() {
		if d != DirectionUnknown && str == s {
			return d, nil
		}
	}
	return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"direction", fmt.Errorf("%q is not a valid payment direction", s))
}

// Validate checks that the direction is one of the defined values.
func (d Direction) Validate() error {
	switch d {
	case FromCarrier, ToCarrier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"direction", fmt.Errorf("%d is not a valid payment direction", d))
	}
}

// String returns the snake_case storage form of the direction.
func (d Direction) String() string {
	if str, ok := getDirectionStrings()[d]; ok {
		return str
	}
	return "Unknown"
}

// MovementType returns the ledger movement type a payment in this direction
// produces.
func (d Direction) MovementType() ledger.MovementType {
	if d == FromCarrier {
		return ledger.PaymentIn
	}
	return ledger.PaymentOut
}

// LedgerAmount returns the signed ledger amount for a payment of the given
// (positive) size. Cash received from the carrier reduces what the carrier
// owes, so it posts negative; cash paid out posts positive.
func (d Direction) LedgerAmount(amount kernel.Money) kernel.Money {
	if d == FromCarrier {
		return amount.Neg()
	}
	return amount
}

// CarrierPayment records money that changed hands against a carrier balance.
type CarrierPayment struct {
	id        kernel.UUID
	carrierID kernel.UUID

	direction Direction
	amount    kernel.Money

	// method is how the money moved ("cash", "bank_transfer", ...).
	method string

	// reference is an external identifier (transfer number, receipt).
	reference string

	notes string

	// settlementID is the settlement this payment closes out, when targeted.
	settlementID *kernel.UUID

	paymentDate time.Time

	guard guard.ConstructorGuard
}

// NewCarrierPayment creates a payment record. The amount must be positive;
// the direction carries the sign into the ledger.
func NewCarrierPayment(
	id kernel.UUID,
	carrierID kernel.UUID,
	direction Direction,
	amount kernel.Money,
	method string,
	reference string,
	notes string,
	paymentDate time.Time,
) (*CarrierPayment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrAmountIsInvalid
	}
	if method == "" {
		return nil, ErrMethodIsRequired
	}

	return &CarrierPayment{
		id:          id,
		carrierID:   carrierID,
		direction:   direction,
		amount:      amount,
		method:      method,
		reference:   reference,
		notes:       notes,
		paymentDate: paymentDate,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreCarrierPayment reconstructs a payment from persistent storage.
func RestoreCarrierPayment(
	id kernel.UUID,
	carrierID kernel.UUID,
	direction Direction,
	amount kernel.Money,
	method string,
	reference string,
	notes string,
	settlementID *kernel.UUID,
	paymentDate time.Time,
) (*CarrierPayment, error) {
	p, err := NewCarrierPayment(id, carrierID, direction, amount, method, reference, notes, paymentDate)
	if err != nil {
		return nil, err
	}
	p.settlementID = settlementID
	return p, nil
}

// Validate ensures the payment was created through a constructor.
func (p *CarrierPayment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment identifier.
func (p *CarrierPayment) ID() kernel.UUID { return p.id }

// CarrierID returns the carrier the payment concerns.
func (p *CarrierPayment) CarrierID() kernel.UUID { return p.carrierID }

// Direction returns which way the money moved.
func (p *CarrierPayment) Direction() Direction { return p.direction }

// Amount returns the positive payment amount.
func (p *CarrierPayment) Amount() kernel.Money { return p.amount }

// Method returns how the money moved.
func (p *CarrierPayment) Method() string { return p.method }

// Reference returns the external payment reference ("" when unset).
func (p *CarrierPayment) Reference() string { return p.reference }

// Notes returns free-form payment notes.
func (p *CarrierPayment) Notes() string { return p.notes }

// SettlementID returns the settlement this payment targets, or nil.
func (p *CarrierPayment) SettlementID() *kernel.UUID { return p.settlementID }

// PaymentDate returns when the money changed hands.
func (p *CarrierPayment) PaymentDate() time.Time { return p.paymentDate }

// AttachSettlement links the payment to the settlement it closes out.
func (p *CarrierPayment) AttachSettlement(settlementID kernel.UUID) error {
	if err := settlementID.Validate(); err != nil {
		return err
	}
	p.settlementID = &settlementID
	return nil
}
