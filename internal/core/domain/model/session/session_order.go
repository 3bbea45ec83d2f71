package session

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var (
	// ErrSessionOrderIsNotConstructed is returned when using an improperly initialized SessionOrder.
	ErrSessionOrderIsNotConstructed = errors.New("SessionOrder must be created via NewSessionOrder constructor")
	// ErrFeeAlreadySnapshotted is returned on a second fee snapshot attempt;
	// the fee taken at dispatch time is immutable.
	ErrFeeAlreadySnapshotted = errors.New("shipping cost already snapshotted at dispatch time")
	// ErrFailureReasonIsRequired is returned when a not-delivered outcome lacks a reason.
	ErrFailureReasonIsRequired = errs.NewValueIsRequiredError("failureReason")
)

// SessionOrder is one order inside a dispatch session. It carries the COD
// amount to collect, the shipping-cost snapshot taken when the session was
// dispatched, and the delivery outcome reported at reconciliation.
type SessionOrder struct {
	orderID kernel.UUID

	// codAmount is the cash the carrier should collect for this order.
	codAmount kernel.Money

	// prepaid marks orders already paid online; they are excluded from cash
	// reconciliation.
	prepaid bool

	// destinationCity is the delivery city used for fee resolution.
	destinationCity string

	// shippingCost is the fee snapshot taken at dispatch time.
	// Nil until the session is dispatched, immutable afterward.
	shippingCost *kernel.Money

	// zoneName records which zone (or fallback) produced the snapshot.
	zoneName string

	// deliveryResult is the outcome reported by the carrier.
	deliveryResult DeliveryResult

	// collectedAmount is the per-order collected cash, when itemized.
	collectedAmount kernel.Money

	// failureReason explains a not-delivered outcome. Required for those.
	failureReason string

	// overridePrepaid reclassifies a COD order as already paid during
	// reconciliation, excluding it from cash expectations.
	overridePrepaid bool

	guard guard.ConstructorGuard
}

// NewSessionOrder creates an order entry in Pending state.
// The COD amount must not be negative (zero is valid for prepaid orders).
func NewSessionOrder(
	orderID kernel.UUID,
	codAmount kernel.Money,
	prepaid bool,
	destinationCity string,
) (*SessionOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if codAmount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("codAmount must not be negative")
	}

	return &SessionOrder{
		orderID:         orderID,
		codAmount:       codAmount,
		prepaid:         prepaid,
		destinationCity: destinationCity,
		deliveryResult:  Pending,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreSessionOrder reconstructs a SessionOrder from persistent storage.
func RestoreSessionOrder(
	orderID kernel.UUID,
	codAmount kernel.Money,
	prepaid bool,
	destinationCity string,
	shippingCost *kernel.Money,
	zoneName string,
	deliveryResult DeliveryResult,
	collectedAmount kernel.Money,
	failureReason string,
	overridePrepaid bool,
) (*SessionOrder, error) {
	so, err := NewSessionOrder(orderID, codAmount, prepaid, destinationCity)
	if err != nil {
		return nil, err
	}
	if err = deliveryResult.Validate(); err != nil {
		return nil, err
	}

	so.shippingCost = shippingCost
	so.zoneName = zoneName
	so.deliveryResult = deliveryResult
	so.collectedAmount = collectedAmount
	so.failureReason = failureReason
	so.overridePrepaid = overridePrepaid
	return so, nil
}

// Validate ensures the order entry was created through a constructor.
func (o *SessionOrder) Validate() error {
	if o == nil {
		return ErrSessionOrderIsNotConstructed
	}
	return o.guard.Validate(ErrSessionOrderIsNotConstructed)
}

// OrderID returns the referenced order identifier.
func (o *SessionOrder) OrderID() kernel.UUID { return o.orderID }

// CODAmount returns the cash the carrier should collect for this order.
func (o *SessionOrder) CODAmount() kernel.Money { return o.codAmount }

// IsPrepaid reports whether the order was already paid (including an
// override applied during reconciliation).
func (o *SessionOrder) IsPrepaid() bool { return o.prepaid || o.overridePrepaid }

// Prepaid reports whether the order was prepaid at session creation,
// ignoring any reconciliation override.
func (o *SessionOrder) Prepaid() bool { return o.prepaid }

// OverridePrepaid reports whether the order was reclassified as prepaid
// during reconciliation.
func (o *SessionOrder) OverridePrepaid() bool { return o.overridePrepaid }

// DestinationCity returns the delivery city used for fee resolution.
func (o *SessionOrder) DestinationCity() string { return o.destinationCity }

// ShippingCost returns the fee snapshot, or nil before dispatch.
func (o *SessionOrder) ShippingCost() *kernel.Money { return o.shippingCost }

// ZoneName returns the zone (or fallback label) that produced the fee snapshot.
func (o *SessionOrder) ZoneName() string { return o.zoneName }

// DeliveryResult returns the reported outcome.
func (o *SessionOrder) DeliveryResult() DeliveryResult { return o.deliveryResult }

// CollectedAmount returns the per-order collected cash, when itemized.
func (o *SessionOrder) CollectedAmount() kernel.Money { return o.collectedAmount }

// FailureReason returns the explanation for a not-delivered outcome.
func (o *SessionOrder) FailureReason() string { return o.failureReason }

// SnapshotFee stores the resolved shipping fee at dispatch time. The snapshot
// may be taken once; later zone rate changes never alter it.
func (o *SessionOrder) SnapshotFee(rate kernel.Money, zoneName string) error {
	if o.shippingCost != nil {
		return ErrFeeAlreadySnapshotted
	}
	if rate.IsNegative() {
		return errs.NewValueIsInvalidError("shippingCost must not be negative")
	}

	o.shippingCost = &rate
	o.zoneName = zoneName
	return nil
}

// RecordOutcome stores the carrier-reported delivery outcome. Not-delivered
// outcomes require a non-empty failure reason; overridePrepaid reclassifies
// a COD order as already paid.
func (o *SessionOrder) RecordOutcome(result DeliveryResult, failureReason string, overridePrepaid bool) error {
	if err := result.Validate(); err != nil {
		return err
	}
	if result.RequiresFailureReason() && failureReason == "" {
		return ErrFailureReasonIsRequired
	}

	o.deliveryResult = result
	o.failureReason = failureReason
	o.overridePrepaid = overridePrepaid
	return nil
}

// CountsTowardCODExpected reports whether this order's COD amount belongs in
// the cash expectation: it was delivered and is not prepaid (originally or
// by override).
func (o *SessionOrder) CountsTowardCODExpected() bool {
	return o.deliveryResult == Delivered && !o.IsPrepaid()
}
