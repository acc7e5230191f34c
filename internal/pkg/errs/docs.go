// Package errs provides standardized error types for the tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - Other specialized error types for specific validation failures
//
// On top of the generic validation errors, the package defines the closed
// taxonomy of domain error kinds used by the guide lifecycle:
//   - InvalidStateTransitionError: illegal target state for the current state
//   - UnauthorizedError: acting user lacks the capability for the operation
//   - AlreadyFinalizedError: terminal timestamp already set on the guide
//   - BusinessConstraintViolationError: domain rule failure outside the state machine
//   - ConcurrentModificationError: optimistic-lock conflict, retryable
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors structurally with errors.Is against the sentinels,
// never by message substring. The HTTP adapter maps each kind to a distinct
// response status.
package errs
