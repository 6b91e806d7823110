package mails

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiMailerSendsToConfiguredEndpoint(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	mailer := &ApiMailer{
		ApiURL:       srv.URL + "/api/send/42",
		ApiToken:     "token123",
		Sender:       "CineLog <no-reply@cinelog.example>",
		RetriesCount: 1,
	}
	err := mailer.Send("user@example.com", "user_welcome.html", map[string]any{"username": "test"})
	require.NoError(t, err)
	assert.Equal(t, "/api/send/42", gotPath)
	assert.Equal(t, "Bearer token123", gotAuth)
	from, ok := gotPayload["from"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "no-reply@cinelog.example", from["email"])
	assert.Equal(t, "CineLog", from["name"])
	assert.Equal(t, "Welcome to CineLog!", gotPayload["subject"])
}

func TestApiMailerReportsApiErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":["Unauthorized"]}`))
	}))
	defer srv.Close()

	mailer := &ApiMailer{
		ApiURL:       srv.URL + "/api/send/42",
		ApiToken:     "bad-token",
		Sender:       "CineLog <no-reply@cinelog.example>",
		RetriesCount: 1,
	}
	err := mailer.Send("user@example.com", "user_welcome.html", map[string]any{"username": "test"})
	assert.ErrorContains(t, err, "failed to send email")
}
