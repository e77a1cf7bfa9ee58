package db

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrInternal wraps any store failure outside the taxonomy above. The underlying
	// cause is logged, not surfaced.
	ErrInternal = errors.New("internal error")
)

type DB interface {
	Accounts
	Social
	Posts
	Notifications
}
