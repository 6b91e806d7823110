package models

import "cinelog/proj/internal/storage/postgres"

type Models struct {
	Movie     *MovieModel
	Review    *ReviewModel
	User      *UserModel
	Favorites *MovieListModel
	Watchlist *MovieListModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Movie:     &MovieModel{db.Conn},
		Review:    &ReviewModel{db.Conn},
		User:      &UserModel{db.Conn},
		Favorites: &MovieListModel{DB: db.Conn, table: "user_favorites"},
		Watchlist: &MovieListModel{DB: db.Conn, table: "user_watchlist"},
	}
}
