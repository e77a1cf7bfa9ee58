package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/warblerhq/warbler/internal/db"
	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/service"
)

// Every response is the JSON envelope {success, message?, ...payload}.
func respond(w http.ResponseWriter, status int, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	if _, ok := payload["success"]; !ok {
		payload["success"] = true
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func fail(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// renderError maps the service error taxonomy onto status codes. Anything outside the
// taxonomy is an internal error: logged, answered with a generic message so no detail
// leaks to the client.
func renderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidOperation),
		errors.Is(err, service.ErrConflict):
		fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, db.ErrNotFound):
		fail(w, http.StatusNotFound, "not found")
	default:
		log.Error().Err(err).Msg("request failed")
		fail(w, http.StatusInternalServerError, "server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

type userJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}

// publicUser hides the email address; it is only present on the owner's own profile.
func publicUser(u domain.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Followers: u.FollowersCount,
		Following: u.FollowingCount,
		CreatedAt: u.CreatedAt,
	}
}

func ownUser(u domain.User) userJSON {
	j := publicUser(u)
	j.Email = u.Email
	return j
}

type summaryJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

func summary(s domain.Summary) summaryJSON {
	return summaryJSON(s)
}

func summaries(ss []domain.Summary) []summaryJSON {
	out := make([]summaryJSON, 0, len(ss))
	for _, s := range ss {
		out = append(out, summary(s))
	}
	return out
}

type postJSON struct {
	ID        int64       `json:"id"`
	Author    summaryJSON `json:"author"`
	Content   string      `json:"content"`
	Media     string      `json:"media,omitempty"`
	ParentID  int64       `json:"parentId,omitempty"`
	QuotedID  int64       `json:"quotedId,omitempty"`
	Likes     int64       `json:"likes"`
	Retweets  int64       `json:"retweets"`
	Replies   int64       `json:"replies"`
	CreatedAt time.Time   `json:"createdAt"`
	Liked     *bool       `json:"liked,omitempty"`
	Retweeted *bool       `json:"retweeted,omitempty"`
}

func post(p domain.Post) postJSON {
	return postJSON{
		ID:        p.ID,
		Author:    summary(p.Author),
		Content:   p.Content,
		Media:     p.Media,
		ParentID:  p.ParentID,
		QuotedID:  p.QuotedID,
		Likes:     p.Likes,
		Retweets:  p.Retweets,
		Replies:   p.Replies,
		CreatedAt: p.CreatedAt,
	}
}

func posts(ps []domain.Post) []postJSON {
	out := make([]postJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, post(p))
	}
	return out
}

func annotatedPost(p domain.AnnotatedPost) postJSON {
	j := post(p.Post)
	j.Liked = &p.Liked
	j.Retweeted = &p.Retweeted
	return j
}

func annotatedPosts(ps []domain.AnnotatedPost) []postJSON {
	out := make([]postJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, annotatedPost(p))
	}
	return out
}

type pageJSON struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func pageMeta(p domain.Page) pageJSON {
	return pageJSON(p)
}
