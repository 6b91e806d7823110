package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinelog/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	app := NewTestApplication(t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/healthcheck", nil)
	app.routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "available", body.Status)
	assert.Equal(t, version, body.Version)
}

func TestSignupValidation(t *testing.T) {
	app := NewTestApplication(t)
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"username": "alice", "email": "alice@example.com"}`},
		{"invalid email", `{"username": "alice", "email": "not-an-email", "password": "s3cretpass"}`},
		{"short password", `{"username": "alice", "email": "alice@example.com", "password": "short"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tc.body))
			app.routes().ServeHTTP(recorder, request)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := NewTestApplication(t)
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/movies/tt0111161/reviews"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodPost, "/api/users/favorites"},
		{http.MethodDelete, "/api/users/favorites/tt0111161"},
		{http.MethodPost, "/api/users/watchlist"},
		{http.MethodDelete, "/api/users/watchlist/tt0111161"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
			app.routes().ServeHTTP(recorder, request)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestAddMovieReviewValidation(t *testing.T) {
	app := NewTestApplication(t)
	user := &models.User{ID: 1, Username: "test"}
	tests := []struct {
		name string
		body string
	}{
		{"missing comment", `{"rating": 9}`},
		{"missing rating", `{"comment": "Great"}`},
		{"rating too high", `{"rating": 11, "comment": "Great"}`},
		{"rating too low", `{"rating": 0, "comment": "Great"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/api/movies/tt0111161/reviews", strings.NewReader(tc.body))
			request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, user))
			app.addMovieReview(recorder, request)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestSearchMoviesRequiresQuery(t *testing.T) {
	app := NewTestApplication(t)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/movies/search", nil)
	app.routes().ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
