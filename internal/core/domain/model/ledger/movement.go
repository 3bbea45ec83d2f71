package ledger

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var (
	// ErrMovementIsNotConstructed is returned when using an improperly initialized Movement.
	ErrMovementIsNotConstructed = errors.New("Movement must be created via NewMovement constructor")
	// ErrDescriptionIsRequired is returned when an adjustment lacks a description.
	// Adjustments are the only way to correct the ledger, so they must be
	// audit-traceable.
	ErrDescriptionIsRequired = errs.NewValueIsRequiredError("description")
)

// Movement is one signed entry in a carrier's append-only ledger. Once
// created it is immutable: the type has no mutating methods, and the
// repository layer only ever inserts.
type Movement struct {
	id        kernel.UUID
	carrierID kernel.UUID

	movementType MovementType

	// amount is signed: positive = carrier owes the store.
	amount kernel.Money

	// optional references tying the entry to its origin
	orderID      *kernel.UUID
	settlementID *kernel.UUID
	paymentID    *kernel.UUID

	description string
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewMovement creates a ledger entry. Adjustments require a description;
// other movement types may omit it. A zero amount is permitted (e.g. a
// failed-fee entry for a carrier that charges 0%).
func NewMovement(
	id kernel.UUID,
	carrierID kernel.UUID,
	movementType MovementType,
	amount kernel.Money,
	description string,
	createdAt time.Time,
) (*Movement, error) {
	m := &Movement{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setCarrierID(carrierID),
		m.setType(movementType, description),
	); err != nil {
		return nil, err
	}

	m.amount = amount
	m.description = description
	m.createdAt = createdAt
	return m, nil
}

// RestoreMovement reconstructs a Movement from persistent storage, including
// its origin references.
func RestoreMovement(
	id kernel.UUID,
	carrierID kernel.UUID,
	movementType MovementType,
	amount kernel.Money,
	orderID, settlementID, paymentID *kernel.UUID,
	description string,
	createdAt time.Time,
) (*Movement, error) {
	m, err := NewMovement(id, carrierID, movementType, amount, description, createdAt)
	if err != nil {
		return nil, err
	}

	m.orderID = orderID
	m.settlementID = settlementID
	m.paymentID = paymentID
	return m, nil
}

// Validate ensures the movement was created through a constructor.
func (m *Movement) Validate() error {
	if m == nil {
		return ErrMovementIsNotConstructed
	}
	return m.guard.Validate(ErrMovementIsNotConstructed)
}

// ID returns the movement identifier.
func (m *Movement) ID() kernel.UUID { return m.id }

// CarrierID returns the carrier this entry belongs to.
func (m *Movement) CarrierID() kernel.UUID { return m.carrierID }

// Type returns the movement classification.
func (m *Movement) Type() MovementType { return m.movementType }

// Amount returns the signed amount (positive = carrier owes the store).
func (m *Movement) Amount() kernel.Money { return m.amount }

// OrderID returns the originating order, or nil.
func (m *Movement) OrderID() *kernel.UUID { return m.orderID }

// SettlementID returns the settlement this entry belongs to, or nil.
func (m *Movement) SettlementID() *kernel.UUID { return m.settlementID }

// PaymentID returns the payment that produced this entry, or nil.
func (m *Movement) PaymentID() *kernel.UUID { return m.paymentID }

// Description returns the human-readable entry description.
func (m *Movement) Description() string { return m.description }

// CreatedAt returns when the entry was appended.
func (m *Movement) CreatedAt() time.Time { return m.createdAt }

// AttachSettlement links the movement to the settlement it was created for.
// Only valid before persistence; posted movements are immutable.
func (m *Movement) AttachSettlement(settlementID kernel.UUID) error {
	if err := settlementID.Validate(); err != nil {
		return err
	}
	m.settlementID = &settlementID
	return nil
}

// AttachOrder links the movement to its originating order.
func (m *Movement) AttachOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	m.orderID = &orderID
	return nil
}

// AttachPayment links the movement to the payment that produced it.
func (m *Movement) AttachPayment(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	m.paymentID = &paymentID
	return nil
}

func (m *Movement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Movement) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	m.carrierID = carrierID
	return nil
}

func (m *Movement) setType(movementType MovementType, description string) error {
	if err := movementType.Validate(); err != nil {
		return err
	}
	if movementType == Adjustment && description == "" {
		return ErrDescriptionIsRequired
	}
	m.movementType = movementType
	return nil
}
