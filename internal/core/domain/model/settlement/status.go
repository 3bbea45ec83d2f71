package settlement

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// Status represents the payment state of a settlement.
//
//	Settled         closed at creation time (net receivable below one
//	                currency unit, nothing to pay)
//	PendingPayment  money still has to change hands
//	Paid            the net receivable has been fully offset by payments
//
// Settled and Paid are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Settled means no payment step is required.
	Settled

	// PendingPayment means an outstanding balance remains.
	PendingPayment

	// Paid means payments fully covered the net receivable.
	Paid
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		Settled:        "settled",
		PendingPayment: "pending_payment",
		Paid:           "paid",
	}
}

// StatusFromString parses a settlement status from its storage form.
func StatusFromString(s string) (Status, error) {
	for st, str := range getStatusStrings() {
		if st != StatusUnknown && str == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid settlement status", s))
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	switch s {
	case Settled, PendingPayment, Paid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid settlement status", s))
	}
}

// String returns the snake_case storage form of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further status changes are possible.
func (s Status) IsTerminal() bool {
	return s == Settled || s == Paid
}
