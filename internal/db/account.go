package db

import (
	"context"
	"time"

	"github.com/warblerhq/warbler/internal/domain"
)

type Accounts interface {
	// CreateUser persists a new user. The caller is responsible for lowercasing username
	// and email and for hashing the password. Returns ErrConflict when the username or
	// email is already taken.
	CreateUser(ctx context.Context, name, username, email, password string) (int64, error)
	GetAuthByUsername(ctx context.Context, username string) (domain.Account, error)
	GetAuthByEmail(ctx context.Context, email string) (domain.Account, error)
	GetAuthByID(ctx context.Context, id int64) (domain.Account, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	// UsernameTaken reports whether another user, excluding excludeID, already holds the
	// username.
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (domain.User, error)
	SetPassword(ctx context.Context, id int64, password string) error
	// SetResetToken stores the hash of a single-use password reset token with its expiry.
	SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error
	// GetUserByResetToken resolves an unexpired reset token hash to a user id; expired or
	// unknown tokens return ErrNotFound.
	GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (int64, error)
	// ResetPassword sets the new password hash and clears the reset token in one step, so
	// the token cannot be replayed.
	ResetPassword(ctx context.Context, id int64, password string) error
}
