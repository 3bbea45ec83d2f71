// Package session contains the DispatchSession aggregate: a batch of orders
// handed to one carrier for one date, tracked through a fixed lifecycle
// (open → dispatched → reconciled → settled, with open → abandoned as the
// only terminal escape hatch).
//
// The aggregate owns its SessionOrder entries. Shipping fees are snapshotted
// onto orders when the session is dispatched and are immutable afterward;
// later zone rate changes never retroactively alter a dispatched session.
package session
