package iostore

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
)

// NotConnectedError is returned when a store is created on an
// operator without an open connection.
func NotConnectedError(driver string) error {
	msg := "Cannot create <em>%s</em> store without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("store for %q: not connected to database", driver),
	}
}

// TransactionError is returned when a write transaction cannot start.
func TransactionError(err error) error {
	msg := `Cannot start write transaction

<em>Possible causes:</em>
  - Another process holds the database lock for too long
  - Database connection was lost`

	return &gn.Error{
		Code: errcode.StoreTransactionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to begin transaction: %w", err),
	}
}

// WriteError is returned when writing stations or observations fails.
func WriteError(err error) error {
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  "Cannot write observations to database",
		Err:  fmt.Errorf("failed to write: %w", err),
	}
}

// IntegrityError is returned when a write violates a constraint that
// the upsert does not resolve.
func IntegrityError(err error) error {
	msg := `Data integrity violation

<em>How to fix:</em>
  1. Check that station files have unique names
  2. Run <em>gnweather migrate</em> to restore missing constraints`

	return &gn.Error{
		Code: errcode.StoreIntegrityError,
		Msg:  msg,
		Err:  fmt.Errorf("integrity constraint violated: %w", err),
	}
}

// QueryError is returned when reading from the store fails.
func QueryError(err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "Cannot read observations from database",
		Err:  fmt.Errorf("failed to query: %w", err),
	}
}

// IsIntegrityError reports whether err carries a store integrity
// violation.
func IsIntegrityError(err error) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && gnErr.Code == errcode.StoreIntegrityError
}
