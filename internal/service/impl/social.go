package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/service"
)

// Follow adds the target to the actor's following set and the actor to the target's
// followers set, then brings both denormalized counters back to the cardinality of the
// underlying sets. Repeated calls converge to the same state.
//
// The mutation runs inside a transaction unless the configuration disables them, in which
// case the steps run sequentially and a failure in the middle can leave the edge written
// but a counter stale. That window is accepted; because the counters are recomputed from
// the edge rows rather than incremented, the next successful call heals any drift.
func (s *AppService) Follow(ctx context.Context, actorID int64, targetUsername string) error {
	target, already, err := s.resolveEdge(ctx, actorID, targetUsername)
	if err != nil {
		return err
	}

	if s.Config.NoTransactions {
		err = s.followSequential(ctx, actorID, target.ID)
	} else {
		err = s.DB.Follow(ctx, actorID, target.ID)
	}
	if err != nil {
		return err
	}

	if !already {
		if err := s.notifier.Notify(ctx, target.ID, actorID, domain.NotifyFollow, 0); err != nil {
			log.Error().Err(err).Int64("target", target.ID).Msg("failed to enqueue follow notification")
		}
	}
	return nil
}

func (s *AppService) Unfollow(ctx context.Context, actorID int64, targetUsername string) error {
	target, _, err := s.resolveEdge(ctx, actorID, targetUsername)
	if err != nil {
		return err
	}

	if s.Config.NoTransactions {
		return s.unfollowSequential(ctx, actorID, target.ID)
	}
	return s.DB.Unfollow(ctx, actorID, target.ID)
}

func (s *AppService) resolveEdge(ctx context.Context, actorID int64, targetUsername string) (domain.User, bool, error) {
	target, err := s.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return domain.User{}, false, err
	}
	if target.ID == actorID {
		return domain.User{}, false, fmt.Errorf("%w: cannot follow yourself", service.ErrInvalidOperation)
	}

	already, err := s.DB.IsFollowing(ctx, actorID, target.ID)
	return target, already, err
}

func (s *AppService) followSequential(ctx context.Context, actorID, targetID int64) error {
	if err := s.DB.AddFollow(ctx, actorID, targetID); err != nil {
		return err
	}
	return s.recomputeBoth(ctx, actorID, targetID)
}

func (s *AppService) unfollowSequential(ctx context.Context, actorID, targetID int64) error {
	if err := s.DB.RemoveFollow(ctx, actorID, targetID); err != nil {
		return err
	}
	return s.recomputeBoth(ctx, actorID, targetID)
}

func (s *AppService) recomputeBoth(ctx context.Context, actorID, targetID int64) error {
	if err := s.DB.RecomputeFollowCounts(ctx, actorID); err != nil {
		log.Error().Err(err).Int64("user", actorID).Msg("counter recompute failed; will heal on next mutation")
		return err
	}
	if err := s.DB.RecomputeFollowCounts(ctx, targetID); err != nil {
		log.Error().Err(err).Int64("user", targetID).Msg("counter recompute failed; will heal on next mutation")
		return err
	}
	return nil
}

func (s *AppService) GetFollowers(ctx context.Context, username string, page, limit int) ([]domain.Summary, domain.Page, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.Page{}, err
	}

	page, limit = clampPaging(page, limit)
	followers, err := s.DB.GetFollowers(ctx, user.ID, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Page{}, err
	}

	total, err := s.DB.FollowerTotal(ctx, user.ID)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return followers, pageMeta(total, page, limit), nil
}

func (s *AppService) GetFollowing(ctx context.Context, username string, page, limit int) ([]domain.Summary, domain.Page, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.Page{}, err
	}

	page, limit = clampPaging(page, limit)
	following, err := s.DB.GetFollowing(ctx, user.ID, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Page{}, err
	}

	total, err := s.DB.FollowingTotal(ctx, user.ID)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return following, pageMeta(total, page, limit), nil
}

func (s *AppService) IsFollowing(ctx context.Context, actorID int64, targetUsername string) (bool, error) {
	target, err := s.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return false, err
	}
	return s.DB.IsFollowing(ctx, actorID, target.ID)
}
