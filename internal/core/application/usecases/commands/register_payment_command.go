package commands

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/payment"
	"settlement/internal/pkg/guard"
)

var (
	ErrRegisterPaymentCommandIsNotConstructed = errors.New(
		"RegisterPaymentCommand must be created via NewRegisterPaymentCommand constructor",
	)
	ErrPaymentAmountIsInvalid  = errors.New("payment amount must be greater than 0")
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
)

// RegisterPaymentCommand represents a cash movement between the store and a
// carrier, optionally applied against a pending settlement.
type RegisterPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID    kernel.UUID
	carrierID    kernel.UUID
	direction    payment.Direction
	amount       kernel.Money
	method       string
	reference    string
	notes        string
	settlementID *kernel.UUID
	paymentDate  time.Time

	guard guard.ConstructorGuard
}

// NewRegisterPaymentCommand creates a command to record a carrier payment.
// settlementID may be nil for standalone payments that only move the ledger.
func NewRegisterPaymentCommand(
	paymentID kernel.UUID,
	carrierID kernel.UUID,
	direction payment.Direction,
	amount kernel.Money,
	method string,
	reference string,
	notes string,
	settlementID *kernel.UUID,
	paymentDate time.Time,
) (RegisterPaymentCommand, error) {
	cmd := RegisterPaymentCommand{
		reference:   reference,
		notes:       notes,
		paymentDate: paymentDate,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setCarrierID(carrierID),
		cmd.setDirection(direction),
		cmd.setAmount(amount),
		cmd.setMethod(method),
		cmd.setSettlementID(settlementID),
	); err != nil {
		return RegisterPaymentCommand{}, err
	}

	if cmd.paymentDate.IsZero() {
		cmd.paymentDate = time.Now().UTC()
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier for the new payment.
func (c RegisterPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// CarrierID returns the carrier money moved to or from.
func (c RegisterPaymentCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// Direction returns whether money came from or went to the carrier.
func (c RegisterPaymentCommand) Direction() payment.Direction {
	return c.direction
}

// Amount returns the positive payment amount.
func (c RegisterPaymentCommand) Amount() kernel.Money {
	return c.amount
}

// Method returns the payment method (transfer, cash, ...).
func (c RegisterPaymentCommand) Method() string {
	return c.method
}

// Reference returns the external payment reference, if any.
func (c RegisterPaymentCommand) Reference() string {
	return c.reference
}

// Notes returns free-form payment notes.
func (c RegisterPaymentCommand) Notes() string {
	return c.notes
}

// SettlementID returns the settlement this payment applies to, or nil.
func (c RegisterPaymentCommand) SettlementID() *kernel.UUID {
	return c.settlementID
}

// PaymentDate returns when the money moved.
func (c RegisterPaymentCommand) PaymentDate() time.Time {
	return c.paymentDate
}

func (c *RegisterPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *RegisterPaymentCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *RegisterPaymentCommand) setDirection(direction payment.Direction) error {
	if err := direction.Validate(); err != nil {
		return err
	}

	c.direction = direction
	return nil
}

func (c *RegisterPaymentCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return ErrPaymentAmountIsInvalid
	}

	c.amount = amount
	return nil
}

func (c *RegisterPaymentCommand) setMethod(method string) error {
	if method == "" {
		return ErrPaymentMethodIsRequired
	}

	c.method = method
	return nil
}

func (c *RegisterPaymentCommand) setSettlementID(settlementID *kernel.UUID) error {
	if settlementID == nil {
		return nil
	}
	if err := settlementID.Validate(); err != nil {
		return err
	}

	c.settlementID = settlementID
	return nil
}
