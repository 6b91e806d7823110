package main

import (
	"log/slog"

	"cinelog/proj/internal/config"
	"cinelog/proj/internal/services"
	"cinelog/proj/internal/services/auth"
	"cinelog/proj/internal/storage/postgres"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
	services     *services.Services
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Application {
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		validator:    govalidator.New(govalidator.WithRequiredStructEnabled()),
		queryDecoder: queryDecoder,
		services:     services.New(log, cfg, storage, taskExecutor),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
