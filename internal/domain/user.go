package domain

import "time"

// Account is the authentication-facing view of a user: the credential fields plus the
// identifiers needed to build a session.
type Account struct {
	UserID   int64
	Username string
	Email    string
	Password string
}

type UserCore struct {
	ID       int64
	Username string
	Name     string
	Bio      string
	Avatar   string
}

// User is the full stored record, including the denormalized follower counters. The
// counters must always equal the cardinality of the corresponding rows in the follow
// relation; they are recomputed from it, never incremented.
type User struct {
	UserCore
	Email          string
	FollowersCount int64
	FollowingCount int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Summary is the short author representation embedded in posts, follower listings and
// notifications.
type Summary struct {
	ID       int64
	Username string
	Name     string
	Avatar   string
}

// ProfileUpdate carries the optional fields of a profile edit. Nil means the field was
// absent from the request; Bio is special-cased because an empty bio is a valid value.
type ProfileUpdate struct {
	Name     *string
	Bio      *string
	Avatar   *string
	Username *string
}
