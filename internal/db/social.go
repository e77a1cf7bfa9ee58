package db

import (
	"context"

	"github.com/warblerhq/warbler/internal/domain"
)

type Social interface {
	// Follow inserts the edge and recomputes both denormalized counters inside a single
	// transaction. No partial effect is possible; on failure the edge and counters are
	// untouched.
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error

	// AddFollow, RemoveFollow and RecomputeFollowCounts are the sequential building
	// blocks used when transactions are disabled. A failure between the steps leaves the
	// edge and the counters out of sync; the counters are recomputed from the edge rows,
	// so any later successful call converges the state again.
	AddFollow(ctx context.Context, followerID, followeeID int64) error
	RemoveFollow(ctx context.Context, followerID, followeeID int64) error
	RecomputeFollowCounts(ctx context.Context, userID int64) error

	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]domain.Summary, error)
	GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]domain.Summary, error)
	// FollowerTotal and FollowingTotal read the denormalized counter, falling back to a
	// live count of the edge rows when the counter is absent.
	FollowerTotal(ctx context.Context, userID int64) (int64, error)
	FollowingTotal(ctx context.Context, userID int64) (int64, error)
}
