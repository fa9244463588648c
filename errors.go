package cankit

import (
	"errors"
	"fmt"
)

// Sentinel errors for CanKit operations.
var (
	// ErrInvalidCondition is returned by Declare when the condition argument
	// is neither a condition function nor an attribute map.
	ErrInvalidCondition = errors.New("cankit: invalid condition")

	// ErrInvalidAction is returned by Declare when the actions argument is
	// neither an action string nor a sequence of action strings.
	ErrInvalidAction = errors.New("cankit: invalid action")

	// ErrUnauthorized is the default error produced by Authorize on denial.
	ErrUnauthorized = errors.New("cankit: unauthorized")

	// ErrNoPerformer is returned when a performer is not found in context.
	ErrNoPerformer = errors.New("cankit: no performer in context")

	// ErrNoAbility is returned when an ability is not found in context.
	ErrNoAbility = errors.New("cankit: no ability in context")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err       error  // Underlying sentinel error
	Message   string // Additional context
	Performer any    // Performer involved (if applicable)
	Action    string // Action involved (if applicable)
	Target    any    // Target involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithPerformer adds performer information to the error.
func (e *Error) WithPerformer(performer any) *Error {
	e.Performer = performer
	return e
}

// WithAction adds action information to the error.
func (e *Error) WithAction(action string) *Error {
	e.Action = action
	return e
}

// WithTarget adds target information to the error.
func (e *Error) WithTarget(target any) *Error {
	e.Target = target
	return e
}

// IsUnauthorized checks if an error is an authorization denial.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsInvalidCondition checks if an error is due to an invalid condition value.
func IsInvalidCondition(err error) bool {
	return errors.Is(err, ErrInvalidCondition)
}

// IsInvalidAction checks if an error is due to an invalid action value.
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

// newInvalidConditionError builds the Declare-time error for an unsupported
// condition value, carrying the offending value's type name.
func newInvalidConditionError(condition any) *Error {
	return NewError(ErrInvalidCondition, fmt.Sprintf("unsupported condition type %T", condition))
}
