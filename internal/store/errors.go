package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Engine error taxonomy. Handlers match these with errors.Is.
var (
	// ErrNotFound means the target record does not exist. Not retried.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a concurrent update won the race at the store
	// layer. The whole submit operation is safe to retry.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrUnavailable is a transient I/O failure talking to the store.
	ErrUnavailable = errors.New("store unavailable")

	// ErrInvalidCursor means a pagination cursor could not be decoded.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// Postgres SQLSTATE codes that indicate a lost race rather than a broken
// request: serialization failure, deadlock, and the unique-index race on
// (post_id, voter_id) when two first votes from one voter collide.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
)

// mapError translates driver errors into the engine taxonomy, wrapping so
// the underlying cause stays inspectable.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrConflict, pgErr.Code)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	// Anything else at this layer is a connection-level failure.
	return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
}
