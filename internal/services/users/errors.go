package users

import "errors"

var (
	ErrAlreadyInFavorites = errors.New("movie already in favorites")
	ErrNotInFavorites     = errors.New("movie not in favorites")
	ErrAlreadyInWatchlist = errors.New("movie already in watchlist")
	ErrNotInWatchlist     = errors.New("movie not in watchlist")
)
