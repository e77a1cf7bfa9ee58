package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func CreatePost(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		var req struct {
			Content string `json:"content"`
			Media   string `json:"media"`
		}
		if !decode(w, r, &req) {
			return
		}

		p, err := h.service.CreatePost(r.Context(), s.UserID, req.Content, req.Media)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusCreated, map[string]any{"tweet": post(p)})
	}
}

func GetPost(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid post id")
			return
		}

		p, err := h.service.GetPost(r.Context(), id)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"tweet": post(p)})
	}
}

func UserPosts(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePaging(r)

		tweets, meta, err := h.service.GetUserPosts(r.Context(), chi.URLParam(r, "username"), page, limit)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"meta":   pageMeta(meta),
			"tweets": posts(tweets),
		})
	}
}

func Feed(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		page, limit := parsePaging(r)

		tweets, meta, err := h.service.GetFeed(r.Context(), s.UserID, page, limit)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"meta":   pageMeta(meta),
			"tweets": annotatedPosts(tweets),
		})
	}
}

func Like(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		id, ok := postID(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid post id")
			return
		}

		p, err := h.service.ToggleLike(r.Context(), s.UserID, id)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"tweet": annotatedPost(p)})
	}
}

func Retweet(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		id, ok := postID(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid post id")
			return
		}

		p, err := h.service.ToggleRetweet(r.Context(), s.UserID, id)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"tweet": annotatedPost(p)})
	}
}

func Reply(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		id, ok := postID(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid post id")
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if !decode(w, r, &req) {
			return
		}

		p, err := h.service.CreateReply(r.Context(), s.UserID, id, req.Content)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusCreated, map[string]any{"tweet": post(p)})
	}
}

func Quote(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		id, ok := postID(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid post id")
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if !decode(w, r, &req) {
			return
		}

		p, err := h.service.CreateQuote(r.Context(), s.UserID, id, req.Content)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusCreated, map[string]any{"tweet": post(p)})
	}
}

func Replies(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid post id")
			return
		}
		page, limit := parsePaging(r)

		replies, meta, err := h.service.GetReplies(r.Context(), id, page, limit)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{
			"meta":   pageMeta(meta),
			"tweets": posts(replies),
		})
	}
}

func DeletePost(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		id, ok := postID(r)
		if !ok {
			fail(w, http.StatusBadRequest, "invalid post id")
			return
		}

		if err := h.service.DeletePost(r.Context(), s.UserID, id); err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"message": "tweet deleted"})
	}
}
