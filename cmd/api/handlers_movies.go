package main

import (
	"errors"
	"net/http"

	"cinelog/proj/internal/services/movies"
	"cinelog/proj/internal/services/reviews"

	"github.com/go-chi/chi/v5"
)

type searchMoviesInput struct {
	Query string `schema:"query" validate:"required" errorMsg:"Search query is required"`
	Page  int    `schema:"page"`
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	input := searchMoviesInput{Page: 1}
	if err := app.queryDecoder.Decode(&input, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, "Invalid query parameters")
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	if input.Page < 1 {
		input.Page = 1
	}
	result, err := app.services.Movies.Search(r.Context(), input.Query, input.Page)
	if err != nil {
		if errors.Is(err, movies.ErrNoResults) {
			app.Http.NotFound(w, r, "No results found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"search": result}, "")
}

func (app *Application) getTrendingMovies(w http.ResponseWriter, r *http.Request) {
	trending, err := app.services.Movies.Trending(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": trending}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	imdbID := chi.URLParam(r, "id")
	if imdbID == "" {
		app.Http.BadRequest(w, r, "Movie ID is required")
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), imdbID)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

type addReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=10"`
	Comment string `json:"comment" validate:"required" errorMsg:"Rating and comment are required"`
}

func (app *Application) addMovieReview(w http.ResponseWriter, r *http.Request) {
	imdbID := chi.URLParam(r, "id")
	var input addReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user := app.contextGetUser(r)
	review, err := app.services.Reviews.Add(r.Context(), imdbID, user.ID, input.Rating, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found")
		case errors.Is(err, reviews.ErrAlreadyReviewed):
			app.Http.BadRequest(w, r, "Movie already reviewed")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "Review added")
}
