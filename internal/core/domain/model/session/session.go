package session

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

var (
	// ErrSessionIsNotConstructed is returned when using an improperly initialized DispatchSession.
	ErrSessionIsNotConstructed = errors.New("DispatchSession must be created via NewDispatchSession constructor")
	// ErrNoOrders is returned when creating a session without any orders.
	ErrNoOrders = errs.NewValueIsRequiredError("orders")
	// ErrOrderNotInSession is returned when an outcome references an order
	// that does not belong to the session.
	ErrOrderNotInSession = errors.New("order does not belong to this session")
	// ErrAbandonReasonIsRequired is returned when abandoning without a reason.
	ErrAbandonReasonIsRequired = errs.NewValueIsRequiredError("abandonReason")
)

// DispatchSession is the aggregate root for a batch of orders handed to one
// carrier for one date. It drives the session lifecycle and owns the
// SessionOrder entries; running counts and totals are derived from them.
//
// Business rules:
//   - Orders are unique within a session
//   - MarkDispatched requires every order to carry a fee snapshot
//   - A dispatched session is never deleted; only an Open session can be
//     abandoned, which releases its orders
//   - Reconcile and Settle only move forward (see Status)
//
// Example usage:
//
//	s, err := NewDispatchSession(kernel.NewUUID(), carrierID, date, orders, "morning batch")
//	if err != nil {
//	    // handle construction error
//	}
//	// resolve and snapshot fees, then:
//	err = s.MarkDispatched(time.Now())
type DispatchSession struct {
	id        kernel.UUID
	carrierID kernel.UUID

	// dispatchDate is the date the batch is (to be) handed to the carrier.
	dispatchDate time.Time

	status Status
	notes  string

	// abandonReason explains why an open session was abandoned.
	abandonReason string

	orders []*SessionOrder

	// lifecycle timestamps, nil until the transition happens
	dispatchedAt *time.Time
	reconciledAt *time.Time
	settledAt    *time.Time
	abandonedAt  *time.Time

	guard guard.ConstructorGuard
}

// NewDispatchSession creates a session in Open status. The order list must be
// non-empty with unique order IDs; exclusivity against other non-terminal
// sessions is enforced at the repository layer.
func NewDispatchSession(
	id kernel.UUID,
	carrierID kernel.UUID,
	dispatchDate time.Time,
	orders []*SessionOrder,
	notes string,
) (*DispatchSession, error) {
	s := &DispatchSession{
		status: Open,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCarrierID(carrierID),
		s.setDispatchDate(dispatchDate),
		s.setOrders(orders),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreDispatchSession reconstructs a session from persistent storage.
func RestoreDispatchSession(
	id kernel.UUID,
	carrierID kernel.UUID,
	dispatchDate time.Time,
	status Status,
	orders []*SessionOrder,
	notes string,
	abandonReason string,
	dispatchedAt, reconciledAt, settledAt, abandonedAt *time.Time,
) (*DispatchSession, error) {
	s := &DispatchSession{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCarrierID(carrierID),
		s.setDispatchDate(dispatchDate),
		s.setOrders(orders),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	s.status = status
	s.notes = notes
	s.abandonReason = abandonReason
	s.dispatchedAt = dispatchedAt
	s.reconciledAt = reconciledAt
	s.settledAt = settledAt
	s.abandonedAt = abandonedAt
	return s, nil
}

// Validate ensures the session was created through a constructor.
func (s *DispatchSession) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// IsEqual compares two sessions by their unique identifiers.
func (s *DispatchSession) IsEqual(other *DispatchSession) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the session identifier.
func (s *DispatchSession) ID() kernel.UUID { return s.id }

// CarrierID returns the carrier the batch belongs to.
func (s *DispatchSession) CarrierID() kernel.UUID { return s.carrierID }

// DispatchDate returns the date the batch is handed to the carrier.
func (s *DispatchSession) DispatchDate() time.Time { return s.dispatchDate }

// Status returns the current lifecycle state.
func (s *DispatchSession) Status() Status { return s.status }

// Notes returns the free-form session notes.
func (s *DispatchSession) Notes() string { return s.notes }

// AbandonReason returns the reason an Open session was abandoned.
func (s *DispatchSession) AbandonReason() string { return s.abandonReason }

// Orders returns the session's orders. The slice must not be mutated by callers.
func (s *DispatchSession) Orders() []*SessionOrder { return s.orders }

// DispatchedAt returns when the session was dispatched, nil before.
func (s *DispatchSession) DispatchedAt() *time.Time { return s.dispatchedAt }

// ReconciledAt returns when the session was reconciled, nil before.
func (s *DispatchSession) ReconciledAt() *time.Time { return s.reconciledAt }

// SettledAt returns when the session was settled, nil before.
func (s *DispatchSession) SettledAt() *time.Time { return s.settledAt }

// AbandonedAt returns when the session was abandoned, nil otherwise.
func (s *DispatchSession) AbandonedAt() *time.Time { return s.abandonedAt }

// OrderByID returns the session order referencing the given order.
func (s *DispatchSession) OrderByID(orderID kernel.UUID) (*SessionOrder, error) {
	for _, o := range s.orders {
		if o.orderID.IsEqual(orderID) {
			return o, nil
		}
	}
	return nil, ErrOrderNotInSession
}

// MarkDispatched transitions Open → Dispatched. Every order must already
// carry its fee snapshot: the snapshot belongs to dispatch time, and later
// rate changes must never alter it.
func (s *DispatchSession) MarkDispatched(now time.Time) error {
	newStatus, err := s.status.Dispatch()
	if err != nil {
		return err
	}

	for _, o := range s.orders {
		if o.shippingCost == nil {
			return errs.NewValueIsRequiredErrorWithCause("shippingCost",
				errors.New("order "+o.orderID.String()+" has no fee snapshot"))
		}
	}

	s.status = newStatus
	s.dispatchedAt = &now
	return nil
}

// MarkReconciled transitions Dispatched → Reconciled. Any other current
// status fails with Conflict, keeping retried reconciliations idempotent.
func (s *DispatchSession) MarkReconciled(now time.Time) error {
	newStatus, err := s.status.Reconcile()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.reconciledAt = &now
	return nil
}

// MarkSettled transitions Reconciled → Settled.
func (s *DispatchSession) MarkSettled(now time.Time) error {
	newStatus, err := s.status.Settle()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.settledAt = &now
	return nil
}

// Abandon transitions Open → Abandoned with a mandatory reason. The session
// becomes terminal, its orders return to the pre-dispatch pool, and no ledger
// movements are ever created for it.
func (s *DispatchSession) Abandon(reason string, now time.Time) error {
	if reason == "" {
		return ErrAbandonReasonIsRequired
	}

	newStatus, err := s.status.Abandon()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.abandonReason = reason
	s.abandonedAt = &now
	return nil
}

// TotalOrders returns the number of orders in the batch.
func (s *DispatchSession) TotalOrders() int { return len(s.orders) }

// DeliveredCount returns how many orders were delivered.
func (s *DispatchSession) DeliveredCount() int { return s.countByResult(Delivered) }

// FailedCount returns how many orders failed delivery.
func (s *DispatchSession) FailedCount() int { return s.countByResult(Failed) }

// RejectedCount returns how many orders were rejected by the customer.
func (s *DispatchSession) RejectedCount() int { return s.countByResult(Rejected) }

// PendingCount returns how many orders still have no outcome.
func (s *DispatchSession) PendingCount() int { return s.countByResult(Pending) }

// TotalCODExpected sums the COD amounts of delivered, non-prepaid orders.
func (s *DispatchSession) TotalCODExpected() kernel.Money {
	total := kernel.ZeroMoney()
	for _, o := range s.orders {
		if o.CountsTowardCODExpected() {
			total = total.Add(o.codAmount)
		}
	}
	return total
}

// TotalShippingCost sums the fee snapshots of all orders in the batch.
// Zero before dispatch.
func (s *DispatchSession) TotalShippingCost() kernel.Money {
	total := kernel.ZeroMoney()
	for _, o := range s.orders {
		if o.shippingCost != nil {
			total = total.Add(*o.shippingCost)
		}
	}
	return total
}

func (s *DispatchSession) countByResult(result DeliveryResult) int {
	n := 0
	for _, o := range s.orders {
		if o.deliveryResult == result {
			n++
		}
	}
	return n
}

func (s *DispatchSession) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *DispatchSession) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	s.carrierID = carrierID
	return nil
}

func (s *DispatchSession) setDispatchDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("dispatchDate")
	}
	s.dispatchDate = date
	return nil
}

func (s *DispatchSession) setOrders(orders []*SessionOrder) error {
	if len(orders) == 0 {
		return ErrNoOrders
	}

	seen := make(map[kernel.UUID]struct{}, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if _, dup := seen[o.orderID]; dup {
			return errs.NewConflictError("orders",
				"order "+o.orderID.String()+" appears more than once")
		}
		seen[o.orderID] = struct{}{}
	}

	s.orders = orders
	return nil
}
