package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/search", app.searchMovies)
			r.Get("/trending", app.getTrendingMovies)
			r.Get("/{id}", app.getMovie)
			r.With(app.requireAuthenticatedUser).Post("/{id}/reviews", app.addMovieReview)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", app.signup)
			r.Post("/login", app.login)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Get("/profile", app.getProfile)
				r.Put("/profile", app.updateProfile)
				r.Post("/favorites", app.addFavorite)
				r.Delete("/favorites/{imdbId}", app.removeFavorite)
				r.Post("/watchlist", app.addToWatchlist)
				r.Delete("/watchlist/{imdbId}", app.removeFromWatchlist)
			})
		})
	})
	return router
}
