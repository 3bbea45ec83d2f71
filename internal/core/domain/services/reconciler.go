package services

import (
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/carrier"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/session"
	"settlement/internal/pkg/errs"
)

// OrderOutcome is the carrier-reported result for one order in a session.
type OrderOutcome struct {
	OrderID kernel.UUID

	Delivered bool

	// FailureReason is mandatory when Delivered is false.
	FailureReason string

	// OverridePrepaid reclassifies a COD order as already paid, excluding it
	// from the cash expectation.
	OverridePrepaid bool
}

// Summary is the exact-arithmetic result of one reconciliation pass.
// NetReceivable follows the ledger sign convention: positive = carrier owes
// the store.
type Summary struct {
	TotalOrders       int
	TotalDelivered    int
	TotalNotDelivered int

	CODExpected   kernel.Money
	CODCollected  kernel.Money
	DeliveredFees kernel.Money
	FailedFees    kernel.Money

	// Discrepancy = collected − expected. A non-zero discrepancy is recorded
	// business data, not an error.
	Discrepancy    kernel.Money
	HasDiscrepancy bool

	NetReceivable kernel.Money
}

// Reconciler validates delivery outcomes against a dispatched session and
// computes the settlement summary. It never mutates anything until the whole
// outcome set has been validated, so a rejected call has zero side effects.
type Reconciler struct{}

// NewReconciler creates a reconciliation service.
func NewReconciler() Reconciler {
	return Reconciler{}
}

// ValidateOutcomes checks the outcome set before any mutation:
// every entry must reference an order in the session, every order must be
// covered exactly once, and every not-delivered entry must carry a failure
// reason. Violations are reported per order so the caller can correct input.
func (r Reconciler) ValidateOutcomes(sess *session.DispatchSession, outcomes []OrderOutcome) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	var violations []error
	seen := make(map[string]struct{}, len(outcomes))

	for _, outcome := range outcomes {
		key := outcome.OrderID.String()
		if _, dup := seen[key]; dup {
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
				"outcomes", fmt.Errorf("order %s reported more than once", key)))
			continue
		}
		seen[key] = struct{}{}

		if _, err := sess.OrderByID(outcome.OrderID); err != nil {
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(
				"outcomes", fmt.Errorf("order %s does not belong to the session", key)))
			continue
		}

		if !outcome.Delivered && outcome.FailureReason == "" {
			violations = append(violations, errs.NewValueIsRequiredErrorWithCause(
				"failureReason", fmt.Errorf("order %s was not delivered", key)))
		}
	}

	if len(seen) != sess.TotalOrders() {
		violations = append(violations, errs.NewValueIsRequiredErrorWithCause(
			"outcomes", fmt.Errorf("session has %d orders, %d outcomes reported",
				sess.TotalOrders(), len(seen))))
	}

	return errors.Join(violations...)
}

// ApplyOutcomes records the validated outcomes onto the session's orders.
// Not-delivered outcomes are stored as Failed unless the session order
// already carries a more specific result from an import.
func (r Reconciler) ApplyOutcomes(sess *session.DispatchSession, outcomes []OrderOutcome) error {
	if err := r.ValidateOutcomes(sess, outcomes); err != nil {
		return err
	}

	for _, outcome := range outcomes {
		order, err := sess.OrderByID(outcome.OrderID)
		if err != nil {
			return err
		}

		result := session.Delivered
		if !outcome.Delivered {
			result = session.Failed
		}

		if err = order.RecordOutcome(result, outcome.FailureReason, outcome.OverridePrepaid); err != nil {
			return err
		}
	}

	return nil
}

// Calculate computes the settlement summary for a session whose orders carry
// recorded outcomes and fee snapshots:
//
//	delivered_fees = Σ shipping_cost over delivered orders
//	failed_fees    = Σ shipping_cost over not-delivered orders × fee% / 100
//	cod_expected   = Σ cod_amount over delivered, non-prepaid orders
//	discrepancy    = collected − cod_expected   (flagged beyond 0.01)
//	net_receivable = collected − delivered_fees − failed_fees
func (r Reconciler) Calculate(
	c *carrier.Carrier,
	sess *session.DispatchSession,
	totalCollected kernel.Money,
) (Summary, error) {
	if err := c.Validate(); err != nil {
		return Summary{}, err
	}
	if err := sess.Validate(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		TotalOrders:   sess.TotalOrders(),
		CODCollected:  totalCollected,
		CODExpected:   kernel.ZeroMoney(),
		DeliveredFees: kernel.ZeroMoney(),
		FailedFees:    kernel.ZeroMoney(),
	}

	notDeliveredFees := kernel.ZeroMoney()

	for _, order := range sess.Orders() {
		cost := order.ShippingCost()
		if cost == nil {
			return Summary{}, errs.NewValueIsRequiredErrorWithCause("shippingCost",
				fmt.Errorf("order %s has no fee snapshot", order.OrderID()))
		}

		switch {
		case order.DeliveryResult() == session.Delivered:
			summary.TotalDelivered++
			summary.DeliveredFees = summary.DeliveredFees.Add(*cost)
			if order.CountsTowardCODExpected() {
				summary.CODExpected = summary.CODExpected.Add(order.CODAmount())
			}
		case order.DeliveryResult().IsNotDelivered():
			summary.TotalNotDelivered++
			notDeliveredFees = notDeliveredFees.Add(*cost)
		default:
			return Summary{}, errs.NewValueIsInvalidErrorWithCause("outcomes",
				fmt.Errorf("order %s has no recorded outcome", order.OrderID()))
		}
	}

	if c.ChargesFailedAttempts() {
		summary.FailedFees = notDeliveredFees.MulPercent(c.FailedAttemptFeePercent())
	}

	summary.Discrepancy = totalCollected.Sub(summary.CODExpected)
	summary.HasDiscrepancy = !totalCollected.WithinTolerance(summary.CODExpected, kernel.DiscrepancyTolerance)
	summary.NetReceivable = totalCollected.Sub(summary.DeliveredFees).Sub(summary.FailedFees)

	return summary, nil
}
