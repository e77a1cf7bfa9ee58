package db

import (
	"context"
	"time"

	"github.com/warblerhq/warbler/internal/domain"
)

type Posts interface {
	// CreatePost inserts a post. parentID and quotedID are optional; zero means unset.
	CreatePost(ctx context.Context, authorID int64, content, media string, parentID, quotedID int64) (domain.Post, error)
	GetPost(ctx context.Context, id int64) (domain.Post, error)
	DeletePost(ctx context.Context, id int64) error

	GetPostsByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]domain.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error)
	GetReplies(ctx context.Context, parentID int64, limit, offset int) ([]domain.Post, error)
	CountReplies(ctx context.Context, parentID int64) (int64, error)

	// GetFeedPosts returns posts authored by the viewer or anyone the viewer follows,
	// newest first, annotated with the viewer's like and retweet state.
	GetFeedPosts(ctx context.Context, viewerID int64, limit, offset int) ([]domain.AnnotatedPost, error)
	CountFeedPosts(ctx context.Context, viewerID int64) (int64, error)

	// GetPostsSince returns every post created at or after since. Used by trending, whose
	// scoring and truncation happen in the service.
	GetPostsSince(ctx context.Context, since time.Time) ([]domain.Post, error)
	// GetAuthorPosts returns all posts by one author, unpaginated, for analytics.
	GetAuthorPosts(ctx context.Context, authorID int64) ([]domain.Post, error)

	HasLiked(ctx context.Context, postID, userID int64) (bool, error)
	AddLike(ctx context.Context, postID, userID int64) error
	RemoveLike(ctx context.Context, postID, userID int64) error
	HasRetweeted(ctx context.Context, postID, userID int64) (bool, error)
	AddRetweet(ctx context.Context, postID, userID int64) error
	RemoveRetweet(ctx context.Context, postID, userID int64) error
}
