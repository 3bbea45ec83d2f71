// Package settlement contains the Settlement record: the immutable financial
// summary produced by reconciling one dispatch session. Totals never change
// after creation; only the status advances (pending_payment → paid) as
// payments are applied against the net receivable.
//
// Each settlement carries a unique human-readable code generated from the
// carrier, the date, and a per-day sequence. Uniqueness is enforced by the
// persistence layer; a concurrent reconciliation race loses with Conflict
// instead of producing a duplicate.
package settlement
