package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrFetch       = errors.New("fetch failed")
	ErrUnavailable = errors.New("storage unavailable")
	ErrQueryFault  = errors.New("query fault")
)

// FetchError reports a failed read of one entity set. It unwraps to ErrFetch
// and to the underlying cause, so callers can match either.
type FetchError struct {
	Entity Entity
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Entity, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetch, e.Err} }

// NewFetchError maps err through MapPgError and wraps it for entity.
func NewFetchError(entity Entity, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Entity: entity, Err: MapPgError(err)}
}

// MapPgError translates Postgres error classes to domain errors.
// Connection-level classes become ErrUnavailable, broken statements become
// ErrQueryFault; everything else passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code),
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow:
			return fmt.Errorf("%w: %s", ErrUnavailable, pgErr.Message)
		case pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code),
			pgerrcode.IsDataException(pgErr.Code):
			return fmt.Errorf("%w: %s", ErrQueryFault, pgErr.Message)
		}
	}
	return err
}
