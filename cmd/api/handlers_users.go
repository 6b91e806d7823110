package main

import (
	"errors"
	"net/http"

	"cinelog/proj/internal/services/auth"
	"cinelog/proj/internal/services/users"

	"github.com/go-chi/chi/v5"
)

type signupInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user, token, err := app.services.Auth.Signup(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			app.Http.BadRequest(w, r, "User already exists")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"user": user, "token": token}, "")
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user, token, err := app.services.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, "Invalid email or password")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": user, "token": token}, "")
}

func (app *Application) getProfile(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)
	favorites, watchlist, err := app.services.UserLists.Lists(r.Context(), user.ID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": user, "favorites": favorites, "watchlist": watchlist}, "")
}

type updateProfileInput struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

func (app *Application) updateProfile(w http.ResponseWriter, r *http.Request) {
	var input updateProfileInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user := app.contextGetUser(r)
	updated, token, err := app.services.Auth.UpdateProfile(r.Context(), user.ID, input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			app.Http.BadRequest(w, r, "Username or email already taken")
		case errors.Is(err, auth.ErrUserNotFound):
			app.Http.NotFound(w, r, "User not found")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"user": updated, "token": token}, "")
}

type movieListInput struct {
	ImdbID string `json:"imdbId" validate:"required" errorMsg:"IMDB ID is required"`
}

func (app *Application) addFavorite(w http.ResponseWriter, r *http.Request) {
	var input movieListInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user := app.contextGetUser(r)
	favorites, err := app.services.UserLists.AddFavorite(r.Context(), user.ID, input.ImdbID)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyInFavorites) {
			app.Http.BadRequest(w, r, "Movie already in favorites")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"favorites": favorites}, "")
}

func (app *Application) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)
	favorites, err := app.services.UserLists.RemoveFavorite(r.Context(), user.ID, chi.URLParam(r, "imdbId"))
	if err != nil {
		if errors.Is(err, users.ErrNotInFavorites) {
			app.Http.BadRequest(w, r, "Movie not in favorites")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"favorites": favorites}, "")
}

func (app *Application) addToWatchlist(w http.ResponseWriter, r *http.Request) {
	var input movieListInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if !app.validateInput(w, r, input) {
		return
	}
	user := app.contextGetUser(r)
	watchlist, err := app.services.UserLists.AddToWatchlist(r.Context(), user.ID, input.ImdbID)
	if err != nil {
		if errors.Is(err, users.ErrAlreadyInWatchlist) {
			app.Http.BadRequest(w, r, "Movie already in watchlist")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"watchlist": watchlist}, "")
}

func (app *Application) removeFromWatchlist(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)
	watchlist, err := app.services.UserLists.RemoveFromWatchlist(r.Context(), user.ID, chi.URLParam(r, "imdbId"))
	if err != nil {
		if errors.Is(err, users.ErrNotInWatchlist) {
			app.Http.BadRequest(w, r, "Movie not in watchlist")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"watchlist": watchlist}, "")
}
