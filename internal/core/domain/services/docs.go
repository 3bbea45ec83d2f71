// Package services contains stateless domain services that coordinate logic
// across aggregates: shipping fee resolution for a (carrier, destination)
// pair and the reconciliation calculation that turns delivery outcomes plus
// collected cash into an exact settlement summary.
//
// Services here are pure: they never touch persistence and have no side
// effects beyond the aggregates passed in.
package services
