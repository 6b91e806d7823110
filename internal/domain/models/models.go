package models

import (
	"time"
)

type Movie struct {
	ID          int64     `json:"id"`
	ImdbID      string    `json:"imdb_id"`      // External identifier issued by the metadata provider
	Title       string    `json:"title"`
	Year        string    `json:"year,omitempty"`
	Poster      string    `json:"poster,omitempty"`
	Plot        string    `json:"plot,omitempty"`
	Director    string    `json:"director,omitempty"`
	Actors      string    `json:"actors,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Rating      string    `json:"rating,omitempty"` // Provider rating, kept as text ("8.3", "N/A")
	Reviews     []Review  `json:"reviews" db:"-"`
	CacheExpiry time.Time `json:"cache_expiry"` // Record is stale once this is in the past
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Movie) IsFresh(now time.Time) bool {
	return m.CacheExpiry.After(now)
}

type Review struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"-"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}
