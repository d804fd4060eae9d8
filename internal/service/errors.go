// Package service implements the staffing and availability core: event
// staffing, per-date availability, event/availability reconciliation and
// the admin aggregation sweep.  Services sit between the HTTP handlers and
// the repositories, accept narrow store interfaces, and convert store
// failures into the error kinds below at their own boundary.
package service

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a referenced slot, event or profile does not
// exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyScheduled is the write-guard rejection: a staff member who is
// already scheduled onto an event cannot change their availability for that
// date.  User-facing, not a system fault.
var ErrAlreadyScheduled = errors.New("already scheduled for this event")

// ErrNoCandidates reports that a bulk operation found zero eligible
// targets.  Informational, not exceptional.
var ErrNoCandidates = errors.New("no available staff for this date")

// ValidationError reports a caller precondition failure (missing person
// name, malformed time range).  It is surfaced without a store round trip.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps an underlying store failure with the operation that hit
// it.  The repositories already attach remediation hints to the common
// first-deployment conditions; this type only marks the failure as
// store-originated so handlers can map it to a 5xx.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
