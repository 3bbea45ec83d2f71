package session

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// DeliveryResult is the per-order outcome reported by the carrier.
// Failed, Rejected, and Rescheduled are treated uniformly as "not delivered"
// for fee purposes: all three incur the failed-attempt fee when the carrier
// charges one, and all three require a failure reason.
type DeliveryResult int

const (
	// ResultUnknown represents an invalid or undefined result.
	ResultUnknown DeliveryResult = iota

	// Pending means no outcome has been reported yet.
	Pending

	// Delivered means the order reached the customer.
	Delivered

	// Failed means the delivery attempt did not succeed.
	Failed

	// Rejected means the customer refused the order.
	Rejected

	// Rescheduled means the attempt was pushed to a later date.
	Rescheduled
)

func getDeliveryResultStrings() map[DeliveryResult]string {
	return map[DeliveryResult]string{
		ResultUnknown: "Unknown",
		Pending:       "pending",
		Delivered:     "delivered",
		Failed:        "failed",
		Rejected:      "rejected",
		Rescheduled:   "rescheduled",
	}
}

// DeliveryResultFromString parses a delivery result from its storage form.
func DeliveryResultFromString(s string) (DeliveryResult, error) {
	for r, str := range getDeliveryResultStrings() {
		if r != ResultUnknown && str == s {
			return r, nil
		}
	}
	return ResultUnknown, errs.NewValueIsInvalidErrorWithCause(
		"deliveryResult", fmt.Errorf("%q is not a valid delivery result", s))
}

// Validate checks that the result is one of the defined values.
func (r DeliveryResult) Validate() error {
	switch r {
	case Pending, Delivered, Failed, Rejected, Rescheduled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryResult", fmt.Errorf("%d is not a valid delivery result", r))
	}
}

// String returns the lowercase storage form of the result.
func (r DeliveryResult) String() string {
	if str, ok := getDeliveryResultStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// IsNotDelivered reports whether the outcome is a concluded, unsuccessful
// attempt (failed, rejected, or rescheduled).
func (r DeliveryResult) IsNotDelivered() bool {
	return r == Failed || r == Rejected || r == Rescheduled
}

// RequiresFailureReason reports whether a non-empty failure reason must
// accompany this outcome.
func (r DeliveryResult) RequiresFailureReason() bool {
	return r.IsNotDelivered()
}
