package service

import (
	"context"
	"errors"

	"github.com/warblerhq/warbler/internal/domain"
)

var (
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid")
	// ErrInvalidOperation marks requests that are well formed but not allowed, such as
	// following oneself.
	ErrInvalidOperation = errors.New("invalid operation")
	ErrForbidden        = errors.New("forbidden")
)

type Service interface {
	Auth
	Users
	SocialGraph
	Engagement
	Feed
	Notifications
}

type Auth interface {
	// Register creates a new user. Username and email are lowercased and must be unique;
	// the reserved username set is rejected.
	Register(ctx context.Context, name, username, email, password string) (domain.User, error)
	// AuthenticateUser takes the user's identifier, which may be their username or email
	// address, and password and verifies if these credentials are correct. If
	// authentication fails, authenticated is false and err is nil; a non nil error
	// indicates that an internal, unexpected error has occured.
	AuthenticateUser(ctx context.Context, user, password string) (a domain.Account, authenticated bool, err error)
	// RequestPasswordReset issues a single-use reset token valid for fifteen minutes.
	// When the email is unknown it returns an empty URL and no error, so callers can
	// answer uniformly and not leak which addresses exist.
	RequestPasswordReset(ctx context.Context, email string) (resetURL string, err error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID int64, current, updated string) error
}

type Users interface {
	GetMyProfile(ctx context.Context, userID int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (domain.User, error)
}

type SocialGraph interface {
	// Follow makes the actor follow the target and brings both denormalized counters
	// back to the cardinality of the underlying sets. Idempotent; self-follow is an
	// invalid operation.
	Follow(ctx context.Context, actorID int64, targetUsername string) error
	Unfollow(ctx context.Context, actorID int64, targetUsername string) error
	GetFollowers(ctx context.Context, username string, page, limit int) ([]domain.Summary, domain.Page, error)
	GetFollowing(ctx context.Context, username string, page, limit int) ([]domain.Summary, domain.Page, error)
	IsFollowing(ctx context.Context, actorID int64, targetUsername string) (bool, error)
}

type Engagement interface {
	CreatePost(ctx context.Context, actorID int64, content, media string) (domain.Post, error)
	CreateReply(ctx context.Context, actorID, parentID int64, content string) (domain.Post, error)
	// CreateQuote validates the text is present but places no length cap on it.
	CreateQuote(ctx context.Context, actorID, quotedID int64, content string) (domain.Post, error)
	ToggleLike(ctx context.Context, actorID, postID int64) (domain.AnnotatedPost, error)
	ToggleRetweet(ctx context.Context, actorID, postID int64) (domain.AnnotatedPost, error)
	DeletePost(ctx context.Context, actorID, postID int64) error
	GetPost(ctx context.Context, postID int64) (domain.Post, error)
	GetReplies(ctx context.Context, postID int64, page, limit int) ([]domain.Post, domain.Page, error)
	GetUserPosts(ctx context.Context, username string, page, limit int) ([]domain.Post, domain.Page, error)
}

type Feed interface {
	GetFeed(ctx context.Context, actorID int64, page, limit int) ([]domain.AnnotatedPost, domain.Page, error)
	// GetTrending scores the posts of the trailing 24 hours and returns at most the top
	// twenty, ordered by score descending with a deterministic tie-break.
	GetTrending(ctx context.Context) ([]domain.TrendingPost, error)
	GetUserAnalytics(ctx context.Context, userID int64) (domain.Analytics, error)
}

type Notifications interface {
	GetNotifications(ctx context.Context, actorID int64) ([]domain.Notification, error)
	MarkNotificationsRead(ctx context.Context, actorID int64) error
}
