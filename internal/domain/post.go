package domain

import "time"

// Post is a stored post. ParentID marks it as a reply, QuotedID as a quote; the two links
// are independent and non-exclusive. Likes and retweets are kept as relations keyed by
// account, so their counts are always derived cardinalities.
type Post struct {
	ID        int64
	Author    Summary
	Content   string
	Media     string
	ParentID  int64
	QuotedID  int64
	Likes     int64
	Retweets  int64
	Replies   int64
	CreatedAt time.Time
}

// AnnotatedPost decorates a post with the relation of the requesting account to it.
type AnnotatedPost struct {
	Post
	Liked     bool
	Retweeted bool
}

// EngagementScore is the ranking weight used by trending and analytics.
func (p *Post) EngagementScore() int64 {
	return 2*p.Likes + 3*p.Retweets + p.Replies
}

// TrendingPost is a scored entry in the trending listing.
type TrendingPost struct {
	Post
	TrendingScore int64
}

// PostEngagement is the per-post breakdown returned by user analytics.
type PostEngagement struct {
	PostID          int64
	Content         string
	Likes           int64
	Retweets        int64
	Replies         int64
	EngagementScore int64
}

// Analytics aggregates every post of one author. MostPopular is nil when the author has
// no posts.
type Analytics struct {
	TotalPosts    int64
	TotalLikes    int64
	TotalRetweets int64
	TotalReplies  int64
	MostPopular   *PostEngagement
	Engagement    []PostEngagement
}

// Page is the pagination metadata attached to listing responses.
type Page struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int64
}
