package session

import (
	"fmt"

	"settlement/internal/pkg/errs"
)

// Status represents the lifecycle state of a dispatch session.
// Sessions only move forward:
//
//	Open ──> Dispatched ──> Reconciled ──> Settled
//	  │
//	  └────> Abandoned (terminal, orders released)
//
// Abandoned is reachable only from Open; a session that was handed to the
// carrier is never deleted or rolled back.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Open is the initial status: orders are batched but not yet handed over.
	Open

	// Dispatched means orders were handed to the carrier with fees snapshotted.
	Dispatched

	// Reconciled means delivery outcomes and cash were processed into a settlement.
	Reconciled

	// Settled means the resulting balance has been fully closed out.
	Settled

	// Abandoned is the terminal state of a session cancelled while still Open.
	Abandoned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Open:          "Open",
		Dispatched:    "Dispatched",
		Reconciled:    "Reconciled",
		Settled:       "Settled",
		Abandoned:     "Abandoned",
	}
}

// StatusFromString parses a status from its storage form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid session status", s))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	switch s {
	case Open, Dispatched, Reconciled, Settled, Abandoned:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid session status", s))
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Settled || s == Abandoned
}

// Dispatch transitions Open → Dispatched.
func (s Status) Dispatch() (Status, error) {
	if s != Open {
		return 0, errs.NewConflictError("session",
			fmt.Sprintf("status is %s, expected Open", s))
	}
	return Dispatched, nil
}

// Reconcile transitions Dispatched → Reconciled. Any other current status is
// a Conflict: a second reconciliation attempt must never produce duplicate
// movements.
func (s Status) Reconcile() (Status, error) {
	if s != Dispatched {
		return 0, errs.NewConflictError("session",
			fmt.Sprintf("status is %s, expected Dispatched", s))
	}
	return Reconciled, nil
}

// Settle transitions Reconciled → Settled.
func (s Status) Settle() (Status, error) {
	if s != Reconciled {
		return 0, errs.NewConflictError("session",
			fmt.Sprintf("status is %s, expected Reconciled", s))
	}
	return Settled, nil
}

// Abandon transitions Open → Abandoned.
func (s Status) Abandon() (Status, error) {
	if s != Open {
		return 0, errs.NewConflictError("session",
			fmt.Sprintf("status is %s, expected Open", s))
	}
	return Abandoned, nil
}
