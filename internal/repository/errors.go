// Package repository contains the raw-SQL data access layer.  This file
// defines sentinel errors shared across repositories and the classification
// of low-level MySQL failures into actionable messages.  Handlers translate
// the sentinels into HTTP codes; services translate them into their own
// error kinds.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a referenced row (slot, event, profile)
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering a profile with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")

// MySQL server error numbers that show up on fresh deployments and deserve
// a remediation hint instead of a raw passthrough.
const (
	mysqlErrTableAccessDenied = 1142 // SELECT/INSERT command denied to user
	mysqlErrNoSuchTable       = 1146 // table doesn't exist
	mysqlErrDupEntry          = 1062 // duplicate entry for unique key
)

// SetupError marks a store failure whose fix is operational rather than a
// code bug.  Remediation carries the hint; handlers may surface it on a
// 5xx body instead of a generic message.
type SetupError struct {
	Remediation string
	Err         error
}

func (e *SetupError) Error() string { return e.Remediation + ": " + e.Err.Error() }
func (e *SetupError) Unwrap() error { return e.Err }

// ClassifyStoreError wraps a driver error with a human-readable remediation
// message for the handful of conditions that are an expected
// first-deployment state (missing grants, missing migrations).  Other
// errors are returned unchanged.
func ClassifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlErrTableAccessDenied:
		return &SetupError{
			Remediation: "database permission denied: grant the application user access to the schema (GRANT on the eventos database)",
			Err:         err,
		}
	case mysqlErrNoSuchTable:
		return &SetupError{
			Remediation: "database table missing: run the migrations (eventosctl migrate up)",
			Err:         err,
		}
	}
	return err
}

// IsDuplicateEntry reports whether err is a unique-key violation.
func IsDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDupEntry
}
