// Package errs provides standardized error types for the settlement engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the settlement core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     validation failures, rejected before any mutation
//   - ObjectNotFoundError: an entity referenced by ID does not exist
//   - ConflictError: a state race was lost (session not in the expected
//     status, duplicate settlement code): rejected with no partial effects
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// A cash discrepancy between expected and collected COD is deliberately NOT
// an error in this taxonomy; it is recorded business data on the settlement.
package errs
