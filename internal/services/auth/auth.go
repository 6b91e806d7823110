package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cinelog/proj/internal/domain/models"
	"cinelog/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type UsersStorage interface {
	Insert(ctx context.Context, username, email string, passwordHash []byte) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}

type AuthService struct {
	log          *slog.Logger
	storage      UsersStorage
	mailer       MailProvider
	taskExecutor TaskExecutor
	secret       []byte
	tokenTTL     time.Duration
}

func New(
	log *slog.Logger,
	storage UsersStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	secret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

func (a *AuthService) sendWelcomeEmail(email, username string) {
	a.log.Info("sending welcome email", "email", email)
	err := a.mailer.Send(email, "user_welcome.html", map[string]any{
		"username": username,
	})
	if err != nil {
		a.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}

// Signup registers a new account and returns it together with a signed token.
// The welcome email is sent in the background and never fails the signup.
func (a *AuthService) Signup(ctx context.Context, username, email, password string) (*models.User, string, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "email", email)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Error hashing password", "errMsg", err.Error())
		return nil, "", err
	}
	user, err := a.storage.Insert(ctx, username, email, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("username or email already taken")
			return nil, "", ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, "", err
	}
	token, err := a.IssueToken(user.ID)
	if err != nil {
		log.Error("Error issuing token", "errMsg", err.Error())
		return nil, "", err
	}
	a.taskExecutor.Add(func() {
		a.sendWelcomeEmail(user.Email, user.Username)
	})
	return user, token, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	user, err := a.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("no user with that email")
			return nil, "", ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return nil, "", ErrInvalidCredentials
	}
	token, err := a.IssueToken(user.ID)
	if err != nil {
		log.Error("Error issuing token", "errMsg", err.Error())
		return nil, "", err
	}
	return user, token, nil
}

func (a *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	log := a.log.With("op", op, "user_id", id)
	user, err := a.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

// UpdateProfile overwrites the provided fields, keeping current values for
// blank ones, and reissues the token.
func (a *AuthService) UpdateProfile(ctx context.Context, userID int64, username, email, password string) (*models.User, string, error) {
	const op = "auth.AuthService.UpdateProfile"
	log := a.log.With("op", op, "user_id", userID)
	user, err := a.GetUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Error hashing password", "errMsg", err.Error())
			return nil, "", err
		}
		user.PasswordHash = passwordHash
	}
	updated, err := a.storage.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("username or email already taken")
			return nil, "", ErrUserAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			log.Info("user not found")
			return nil, "", ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, "", err
	}
	token, err := a.IssueToken(updated.ID)
	if err != nil {
		log.Error("Error issuing token", "errMsg", err.Error())
		return nil, "", err
	}
	return updated, token, nil
}

func (a *AuthService) IssueToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(a.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyToken checks the signature and expiry and returns the user id carried
// in the token.
func (a *AuthService) VerifyToken(token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int64(uid), nil
}
