/*
errors.go - Centralized error types for the scheduling core

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (HTTP layer, CLI) classify with errors.Is / errors.As and map
  to transport-level responses.

ERROR CATEGORIES:
  1. Validation errors - request shape violations, rejected before any write
  2. State errors      - transitions attempted on terminal or missing records
  3. Store errors      - persistence failures, wrapped with the failed op

SEE ALSO:
  - validate.go: Produces ValidationError
  - service.go:  Produces InvalidStateError and StoreError
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidState is returned when an approval, rejection, or deletion
	// targets a record that is already terminal. Distinct from a silent
	// no-op so callers can tell "already handled" from "succeeded".
	ErrInvalidState = errors.New("invalid state")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrStoreFailure is returned when the underlying store fails.
	ErrStoreFailure = errors.New("store failure")

	// ErrForbidden is returned when the acting role is not allowed to
	// perform the operation.
	ErrForbidden = errors.New("operation not permitted")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError is a field-level failure surfaced before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidStateError reports a transition attempted on a record whose
// current status does not admit it.
type InvalidStateError struct {
	Kind   string // "time_off_request" or "weekly_schedule"
	ID     string
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s is %s", e.Kind, e.ID, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// StoreError wraps a persistence failure with the operation that failed.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure in %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error { return ErrStoreFailure }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// or an impossible transition, as opposed to an infrastructure failure.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrForbidden)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
