// Package ledger contains the CarrierMovement value object: one signed
// monetary entry in a carrier's append-only ledger.
//
// The running balance of a carrier is the sum of all its movement amounts.
// Movements are never updated or deleted; corrections are new adjustment
// movements with a mandatory description, so the audit trail stays complete.
//
// Sign convention, applied uniformly everywhere: POSITIVE = the carrier owes
// the store. COD cash collected by the carrier is positive, carrier fees are
// negative, cash remitted by the carrier (payment_in) is negative because it
// reduces what the carrier still owes.
package ledger
