package services

import (
	"log/slog"

	"cinelog/proj/internal/clients/omdb"
	"cinelog/proj/internal/config"
	"cinelog/proj/internal/mails"
	"cinelog/proj/internal/services/auth"
	"cinelog/proj/internal/services/movies"
	"cinelog/proj/internal/services/reviews"
	"cinelog/proj/internal/services/users"
	"cinelog/proj/internal/storage/postgres"
	"cinelog/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth      *auth.AuthService
	Movies    *movies.MovieService
	Reviews   *reviews.ReviewService
	UserLists *users.UserListsService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Services {
	mailer := &mails.ApiMailer{
		ApiURL:       cfg.SMTPServer.ApiURL,
		ApiToken:     cfg.SMTPServer.ApiToken,
		Sender:       cfg.SMTPServer.Sender,
		RetriesCount: cfg.SMTPServer.RetriesCount,
	}
	db := models.New(storage)
	provider := omdb.New(log, cfg.Omdb.ApiKey, cfg.Omdb.BaseURL, cfg.Omdb.Timeout)
	movieService := movies.New(log, db.Movie, db.Review, provider)
	return &Services{
		Auth:      auth.New(log, db.User, mailer, taskExecutor, cfg.AppSecret, cfg.Auth.TokenTTL),
		Movies:    movieService,
		Reviews:   reviews.New(log, movieService, db.Review),
		UserLists: users.New(log, db.Favorites, db.Watchlist),
	}
}
