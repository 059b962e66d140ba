package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	// ErrStorage marks any failure talking to the store. The message of the
	// underlying error is kept so it can be shown to operators.
	ErrStorage = errors.New("storage error")
	// ErrUnavailable marks failures where the store could not be reached at all.
	ErrUnavailable = errors.New("storage unavailable")
)

// StorageError carries the failed operation and the driver error behind it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrStorage for every StorageError, and ErrUnavailable
// when the wrapped error is a connection-level failure.
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrStorage:
		return true
	case ErrUnavailable:
		return isConnectionFailure(e.Err)
	}
	return false
}

// MapPgError wraps a driver error into a StorageError for op.
// nil stays nil so call sites can wrap unconditionally.
func MapPgError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func isConnectionFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			isShutdownCode(pgErr.Code)
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

func isShutdownCode(code string) bool {
	switch code {
	case pgerrcode.AdminShutdown, pgerrcode.CrashShutdown, pgerrcode.CannotConnectNow, pgerrcode.TooManyConnections:
		return true
	}
	return false
}
