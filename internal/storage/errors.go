// ABOUTME: Error kinds returned by the storage layer.
// ABOUTME: Sentinels match with errors.Is, structured errors with errors.As.
package storage

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when a get or delete targets a missing row.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation is returned for unique and foreign-key failures.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrLostUpdate is returned when an update targets a row that no longer exists.
	ErrLostUpdate = errors.New("lost update")

	// ErrInvalidInput is returned when caller input is rejected before any I/O.
	ErrInvalidInput = errors.New("invalid input")
)

// SchemaError reports a failed bootstrap step. Nothing from the failed
// bootstrap is left behind.
type SchemaError struct {
	Step string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("initialize schema: %s: %v", e.Step, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// QueryError reports a failed read. It is never returned alongside a
// partial result.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// classify maps SQLite constraint failures onto ErrConstraintViolation and
// leaves every other error untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isConstraint(err) {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return err
}

func isConstraint(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// Extended codes carry the primary code in the low byte.
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
