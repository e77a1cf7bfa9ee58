package domain

import "time"

const (
	NotifyLike    = "like"
	NotifyRetweet = "retweet"
	NotifyReply   = "reply"
	NotifyQuote   = "quote"
	NotifyFollow  = "follow"
)

// Notification is a fan-in record of a social event. PostID is zero for follow
// notifications.
type Notification struct {
	ID        int64
	Recipient int64
	Sender    Summary
	Kind      string
	PostID    int64
	PostText  string
	Read      bool
	CreatedAt time.Time
}
