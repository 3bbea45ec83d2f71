// Package carrier contains the Carrier aggregate: a third-party delivery
// company the store hands COD orders to. The aggregate owns the carrier's
// settlement configuration (settlement type, failed-attempt fee percent,
// payment schedule) and its delivery zones with per-zone shipping rates.
//
// The carrier is referenced, never owned, by dispatch sessions, ledger
// movements, settlements, and payments.
package carrier
