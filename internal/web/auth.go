package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const SessionKey = "user"

type Session struct {
	UserID   int64
	Username string
}

type key struct{}

func GetSession(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(key{}).(Session)
	return s, ok
}

func SessionMiddleware(handler *Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			zero := Session{}
			session := handler.SessionManager.Load(r)
			var s Session
			err := session.GetObject(SessionKey, &s)
			if s != zero && err == nil {
				ctx := r.Context()
				ctx = context.WithValue(ctx, key{}, s)
				r = r.WithContext(ctx)
			}

			h.ServeHTTP(w, r)
		})
	}
}

func AuthenticatedMiddleware(handler *Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetSession(r.Context()); ok {
				h.ServeHTTP(w, r)
				return
			}
			fail(w, http.StatusUnauthorized, "authentication required")
		})
	}
}

func Register(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decode(w, r, &req) {
			return
		}

		u, err := h.service.Register(r.Context(), req.Name, req.Username, req.Email, req.Password)
		if err != nil {
			renderError(w, err)
			return
		}

		respond(w, http.StatusCreated, map[string]any{
			"message": "user registered successfully",
			"user":    ownUser(u),
		})
	}
}

func Login(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EmailOrUsername string `json:"emailOrUsername"`
			Password        string `json:"password"`
		}
		if !decode(w, r, &req) {
			return
		}

		a, authenticated, err := h.service.AuthenticateUser(r.Context(), req.EmailOrUsername, req.Password)
		if err != nil {
			renderError(w, err)
			return
		}
		if !authenticated {
			fail(w, http.StatusBadRequest, "invalid credentials")
			return
		}

		session := h.SessionManager.Load(r)
		err = session.PutObject(w, SessionKey, Session{
			UserID:   a.UserID,
			Username: a.Username,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to create session")
			fail(w, http.StatusInternalServerError, "server error")
			return
		}

		respond(w, http.StatusOK, map[string]any{
			"message": "login successful",
			"user": map[string]any{
				"id":       a.UserID,
				"username": a.Username,
				"email":    a.Email,
			},
		})
	}
}

func Logout(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := h.SessionManager.Load(r)
		if err := s.Destroy(w); err != nil {
			log.Error().Err(err).Msg("failed to destroy session")
		}
		respond(w, http.StatusOK, map[string]any{"message": "logged out"})
	}
}

func RequestPasswordReset(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if !decode(w, r, &req) {
			return
		}

		resetURL, err := h.service.RequestPasswordReset(r.Context(), req.Email)
		if err != nil {
			renderError(w, err)
			return
		}

		// Same message whether or not the address exists.
		payload := map[string]any{
			"message": "if that email exists, a reset link has been sent",
		}
		if resetURL != "" {
			payload["resetURL"] = resetURL
		}
		respond(w, http.StatusOK, payload)
	}
}

func ResetPassword(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			NewPassword string `json:"newPassword"`
		}
		if !decode(w, r, &req) {
			return
		}

		err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.NewPassword)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"message": "password reset successful"})
	}
}

func ChangePassword(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if !decode(w, r, &req) {
			return
		}

		err := h.service.ChangePassword(r.Context(), s.UserID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			renderError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"message": "password changed"})
	}
}
