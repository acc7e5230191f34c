package errs

import "fmt"

// InvalidStateTransitionError indicates that a guide cannot move from its
// current state to the requested target state.
type InvalidStateTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewInvalidStateTransitionError creates an InvalidStateTransitionError without
// a cause.
func NewInvalidStateTransitionError(from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to}
}

// NewInvalidStateTransitionErrorWithCause creates an InvalidStateTransitionError
// wrapping an underlying cause.
func NewInvalidStateTransitionErrorWithCause(from, to string, cause error) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidStateTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s -> %s (cause: %s)", ErrInvalidStateTransition, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidStateTransition, e.From, e.To))
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// UnauthorizedError indicates that the acting user lacks the capability to
// perform an operation on a guide.
type UnauthorizedError struct {
	Actor     string
	Operation string
	Cause     error
}

// NewUnauthorizedError creates an UnauthorizedError without a cause.
func NewUnauthorizedError(actor, operation string) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Operation: operation}
}

// NewUnauthorizedErrorWithCause creates an UnauthorizedError wrapping an
// underlying cause.
func NewUnauthorizedErrorWithCause(actor, operation string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Operation: operation, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s may not %s (cause: %s)", ErrUnauthorized, e.Actor, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s may not %s", ErrUnauthorized, e.Actor, e.Operation))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// AlreadyFinalizedError indicates that a terminal timestamp is already set and
// the guide refuses a second terminal transition.
type AlreadyFinalizedError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewAlreadyFinalizedError creates an AlreadyFinalizedError without a cause.
func NewAlreadyFinalizedError(paramName string, id any) *AlreadyFinalizedError {
	return &AlreadyFinalizedError{ParamName: paramName, ID: id}
}

// NewAlreadyFinalizedErrorWithCause creates an AlreadyFinalizedError wrapping
// an underlying cause.
func NewAlreadyFinalizedErrorWithCause(paramName string, id any, cause error) *AlreadyFinalizedError {
	return &AlreadyFinalizedError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *AlreadyFinalizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s %v (cause: %s)", ErrAlreadyFinalized, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s %v", ErrAlreadyFinalized, e.ParamName, e.ID))
}

func (e *AlreadyFinalizedError) Unwrap() error {
	return ErrAlreadyFinalized
}

// BusinessConstraintViolationError indicates a domain rule failure that is not
// a state-machine problem, e.g. a courier without an active contract.
type BusinessConstraintViolationError struct {
	Constraint string
	Cause      error
}

// NewBusinessConstraintViolationError creates a BusinessConstraintViolationError
// without a cause.
func NewBusinessConstraintViolationError(constraint string) *BusinessConstraintViolationError {
	return &BusinessConstraintViolationError{Constraint: constraint}
}

// NewBusinessConstraintViolationErrorWithCause creates a
// BusinessConstraintViolationError wrapping an underlying cause.
func NewBusinessConstraintViolationErrorWithCause(constraint string, cause error) *BusinessConstraintViolationError {
	return &BusinessConstraintViolationError{Constraint: constraint, Cause: cause}
}

func (e *BusinessConstraintViolationError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrBusinessConstraintViolation, e.Constraint, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrBusinessConstraintViolation, e.Constraint))
}

func (e *BusinessConstraintViolationError) Unwrap() error {
	return ErrBusinessConstraintViolation
}

// ConcurrentModificationError indicates that another actor mutated the same
// guide between read and write. Callers may retry the whole operation.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConcurrentModificationError creates a ConcurrentModificationError without
// a cause.
func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

// NewConcurrentModificationErrorWithCause creates a ConcurrentModificationError
// wrapping an underlying cause.
func NewConcurrentModificationErrorWithCause(paramName string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s %v (cause: %s)", ErrConcurrentModification, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s %v", ErrConcurrentModification, e.ParamName, e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
