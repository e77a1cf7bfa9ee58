package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warblerhq/warbler/internal/domain"
)

func Trending(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trending, err := h.service.GetTrending(r.Context())
		if err != nil {
			renderError(w, err)
			return
		}

		tweets := make([]map[string]any, 0, len(trending))
		for _, t := range trending {
			tweets = append(tweets, map[string]any{
				"id":            t.ID,
				"content":       t.Content,
				"author":        summary(t.Author),
				"likes":         t.Likes,
				"retweets":      t.Retweets,
				"replies":       t.Replies,
				"trendingScore": t.TrendingScore,
			})
		}

		respond(w, http.StatusOK, map[string]any{
			"trendingCount": len(tweets),
			"tweets":        tweets,
		})
	}
}

func Analytics(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil || userID < 1 {
			fail(w, http.StatusBadRequest, "invalid user id")
			return
		}

		analytics, err := h.service.GetUserAnalytics(r.Context(), userID)
		if err != nil {
			renderError(w, err)
			return
		}

		respond(w, http.StatusOK, map[string]any{
			"analytics": map[string]any{
				"totalTweets":      analytics.TotalPosts,
				"totalLikes":       analytics.TotalLikes,
				"totalRetweets":    analytics.TotalRetweets,
				"totalReplies":     analytics.TotalReplies,
				"mostPopularTweet": engagementJSON(analytics.MostPopular),
				"tweetEngagement":  engagementList(analytics.Engagement),
			},
		})
	}
}

func engagementJSON(e *domain.PostEngagement) map[string]any {
	if e == nil {
		return nil
	}
	return map[string]any{
		"tweetId":         e.PostID,
		"content":         e.Content,
		"likes":           e.Likes,
		"retweets":        e.Retweets,
		"replies":         e.Replies,
		"engagementScore": e.EngagementScore,
	}
}

func engagementList(es []domain.PostEngagement) []map[string]any {
	out := make([]map[string]any, 0, len(es))
	for i := range es {
		out = append(out, engagementJSON(&es[i]))
	}
	return out
}
