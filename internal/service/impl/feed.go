package core

import (
	"context"
	"sort"
	"time"

	"github.com/warblerhq/warbler/internal/domain"
)

const (
	TrendingWindow = 24 * time.Hour
	TrendingLimit  = 20
)

func (s *AppService) GetFeed(ctx context.Context, actorID int64, page, limit int) ([]domain.AnnotatedPost, domain.Page, error) {
	page, limit = clampPaging(page, limit)

	posts, err := s.DB.GetFeedPosts(ctx, actorID, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Page{}, err
	}

	total, err := s.DB.CountFeedPosts(ctx, actorID)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return posts, pageMeta(total, page, limit), nil
}

func (s *AppService) GetTrending(ctx context.Context) ([]domain.TrendingPost, error) {
	since := time.Now().Add(-TrendingWindow)
	posts, err := s.DB.GetPostsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	trending := make([]domain.TrendingPost, 0, len(posts))
	for _, p := range posts {
		trending = append(trending, domain.TrendingPost{
			Post:          p,
			TrendingScore: p.EngagementScore(),
		})
	}

	sort.Slice(trending, func(i, j int) bool {
		return lessEngaging(&trending[j].Post, &trending[i].Post)
	})

	if len(trending) > TrendingLimit {
		trending = trending[:TrendingLimit]
	}
	return trending, nil
}

func (s *AppService) GetUserAnalytics(ctx context.Context, userID int64) (domain.Analytics, error) {
	posts, err := s.DB.GetAuthorPosts(ctx, userID)
	if err != nil {
		return domain.Analytics{}, err
	}

	analytics := domain.Analytics{
		TotalPosts: int64(len(posts)),
		Engagement: make([]domain.PostEngagement, 0, len(posts)),
	}
	if len(posts) == 0 {
		return analytics, nil
	}

	var best *domain.Post
	for i := range posts {
		p := &posts[i]
		analytics.TotalLikes += p.Likes
		analytics.TotalRetweets += p.Retweets
		analytics.TotalReplies += p.Replies
		analytics.Engagement = append(analytics.Engagement, engagementOf(p))

		if best == nil || lessEngaging(best, p) {
			best = p
		}
	}

	top := engagementOf(best)
	analytics.MostPopular = &top
	return analytics, nil
}

func engagementOf(p *domain.Post) domain.PostEngagement {
	return domain.PostEngagement{
		PostID:          p.ID,
		Content:         p.Content,
		Likes:           p.Likes,
		Retweets:        p.Retweets,
		Replies:         p.Replies,
		EngagementScore: p.EngagementScore(),
	}
}

// lessEngaging orders posts for ranking: lower score first, then older, then higher id.
// The explicit tie-break keeps trending and most-popular selection reproducible.
func lessEngaging(a, b *domain.Post) bool {
	if a.EngagementScore() != b.EngagementScore() {
		return a.EngagementScore() < b.EngagementScore()
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID > b.ID
}
