package web

import (
	"net/http"
	"time"
)

type notificationJSON struct {
	ID        int64       `json:"id"`
	Sender    summaryJSON `json:"sender"`
	Kind      string      `json:"kind"`
	TweetID   int64       `json:"tweetId,omitempty"`
	TweetText string      `json:"tweetText,omitempty"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"createdAt"`
}

func Notifications(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())

		notifications, err := h.service.GetNotifications(r.Context(), s.UserID)
		if err != nil {
			renderError(w, err)
			return
		}

		out := make([]notificationJSON, 0, len(notifications))
		for _, n := range notifications {
			out = append(out, notificationJSON{
				ID:        n.ID,
				Sender:    summary(n.Sender),
				Kind:      n.Kind,
				TweetID:   n.PostID,
				TweetText: n.PostText,
				Read:      n.Read,
				CreatedAt: n.CreatedAt,
			})
		}
		respond(w, http.StatusOK, map[string]any{"notifications": out})
	}
}

func MarkNotificationsRead(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())

		if err := h.service.MarkNotificationsRead(r.Context(), s.UserID); err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"message": "all notifications marked as read"})
	}
}
