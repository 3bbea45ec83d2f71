// Package kernel contains shared value objects used across all aggregates of
// the settlement domain: identifiers, exact-arithmetic money, and destination
// city normalization.
//
// Everything in this package is immutable and safe for concurrent use. Value
// objects are created through factory functions that validate their input;
// zero values are either invalid (UUID) or meaningful (Money, which is zero
// currency units).
package kernel
