package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Mount(r chi.Router) {
	if h.Config.Debug {
		r.Use(middleware.Logger)
	}

	authenticated := AuthenticatedMiddleware(h)
	r.Use(SessionMiddleware(h))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", Register(h))
		r.Post("/login", Login(h))
		r.Get("/logout", Logout(h))
		r.Post("/request-password-reset", RequestPasswordReset(h))
		r.Post("/reset-password/{token}", ResetPassword(h))
	})

	r.Route("/user", func(r chi.Router) {
		r.Method(http.MethodGet, "/me", authenticated(MyProfile(h)))
		r.Method(http.MethodPut, "/update", authenticated(UpdateProfile(h)))
		r.Method(http.MethodPut, "/change-password", authenticated(ChangePassword(h)))
		r.Get("/{username}", Profile(h))
		r.Method(http.MethodPost, "/{username}/follow", authenticated(Follow(h)))
		r.Method(http.MethodPost, "/{username}/unfollow", authenticated(Unfollow(h)))
		r.Get("/{username}/followers", Followers(h))
		r.Get("/{username}/following", Following(h))
		r.Method(http.MethodGet, "/{username}/is-following", authenticated(IsFollowing(h)))
	})

	r.Route("/tweets", func(r chi.Router) {
		r.Method(http.MethodPost, "/", authenticated(CreatePost(h)))
		r.Method(http.MethodGet, "/feed", authenticated(Feed(h)))
		r.Get("/trending", Trending(h))
		r.Get("/user/{username}", UserPosts(h))
		r.Get("/{id}", GetPost(h))
		r.Method(http.MethodDelete, "/{id}", authenticated(DeletePost(h)))
		r.Method(http.MethodGet, "/{id}/replies", authenticated(Replies(h)))
		r.Method(http.MethodPut, "/{id}/like", authenticated(Like(h)))
		r.Method(http.MethodPost, "/{id}/retweet", authenticated(Retweet(h)))
		r.Method(http.MethodPost, "/{id}/reply", authenticated(Reply(h)))
		r.Method(http.MethodPost, "/{id}/quote", authenticated(Quote(h)))
	})

	r.Method(http.MethodGet, "/analytics/{userId}", authenticated(Analytics(h)))

	r.Route("/notifications", func(r chi.Router) {
		r.Method(http.MethodGet, "/", authenticated(Notifications(h)))
		r.Method(http.MethodPost, "/read", authenticated(MarkNotificationsRead(h)))
	})
}
