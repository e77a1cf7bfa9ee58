package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warblerhq/warbler/internal/domain"
)

func parsePaging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if r.URL.Query().Get("limit") == "" {
		limit = 0 // service applies the default
	}
	return page, limit
}

func MyProfile(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())

		u, err := h.service.GetMyProfile(r.Context(), s.UserID)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"user": ownUser(u)})
	}
}

func Profile(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.service.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"user": publicUser(u)})
	}
}

func UpdateProfile(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		var req struct {
			Name     *string `json:"name"`
			Bio      *string `json:"bio"`
			Avatar   *string `json:"avatar"`
			Username *string `json:"username"`
		}
		if !decode(w, r, &req) {
			return
		}

		u, err := h.service.UpdateProfile(r.Context(), s.UserID, domain.ProfileUpdate{
			Name:     req.Name,
			Bio:      req.Bio,
			Avatar:   req.Avatar,
			Username: req.Username,
		})
		if err != nil {
			renderError(w, err)
			return
		}

		respond(w, http.StatusOK, map[string]any{
			"message": "profile updated",
			"user":    ownUser(u),
		})
	}
}

func Follow(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())

		err := h.service.Follow(r.Context(), s.UserID, chi.URLParam(r, "username"))
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"message": "followed"})
	}
}

func Unfollow(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())

		err := h.service.Unfollow(r.Context(), s.UserID, chi.URLParam(r, "username"))
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"message": "unfollowed"})
	}
}

func Followers(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePaging(r)

		followers, meta, err := h.service.GetFollowers(r.Context(), chi.URLParam(r, "username"), page, limit)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"meta":      pageMeta(meta),
			"followers": summaries(followers),
		})
	}
}

func Following(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePaging(r)

		following, meta, err := h.service.GetFollowing(r.Context(), chi.URLParam(r, "username"), page, limit)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"meta":      pageMeta(meta),
			"following": summaries(following),
		})
	}
}

func IsFollowing(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())

		follows, err := h.service.IsFollowing(r.Context(), s.UserID, chi.URLParam(r, "username"))
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"isFollowing": follows})
	}
}
