package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cinelog/proj/internal/config"
	"cinelog/proj/internal/domain/models"
	"cinelog/proj/internal/services"
	"cinelog/proj/internal/services/auth"
	"cinelog/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type testUsersStorage struct {
	users map[int64]*models.User
}

func (s *testUsersStorage) Insert(_ context.Context, username, email string, passwordHash []byte) (*models.User, error) {
	return nil, storage.ErrConflict
}

func (s *testUsersStorage) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (s *testUsersStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return nil, storage.ErrNotFound
}

func (s *testUsersStorage) Update(_ context.Context, user *models.User) (*models.User, error) {
	return user, nil
}

type noopMailer struct{}

func (noopMailer) Send(recipient string, tmplName string, tmplData any) error { return nil }

type noopExecutor struct{}

func (noopExecutor) Add(task func()) {}

// NewTestApplication builds an Application wired to in-memory auth storage,
// enough for middleware and validation tests that never reach the database.
func NewTestApplication(t *testing.T, users ...*models.User) *Application {
	t.Helper()
	cfg := &config.Config{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	usersStorage := &testUsersStorage{users: make(map[int64]*models.User)}
	for _, u := range users {
		usersStorage.users[u.ID] = u
	}
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		validator:    govalidator.New(govalidator.WithRequiredStructEnabled()),
		queryDecoder: queryDecoder,
		services: &services.Services{
			Auth: auth.New(log, usersStorage, noopMailer{}, noopExecutor{}, "test-secret", time.Hour),
		},
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
