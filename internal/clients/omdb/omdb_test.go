package omdb

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinelog/proj/internal/services/movies"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(slog.Default(), "test-key", server.URL, time.Second)
}

func TestGetByID(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"apikey": q.Get("apikey"),
			"i":      q.Get("i"),
			"plot":   q.Get("plot"),
		}
		w.Write([]byte(`{
			"Response": "True",
			"imdbID": "tt0111161",
			"Title": "The Shawshank Redemption",
			"Year": "1994",
			"Plot": "Two imprisoned men...",
			"Director": "Frank Darabont",
			"Actors": "Tim Robbins, Morgan Freeman",
			"Genre": "Drama",
			"imdbRating": "9.3"
		}`))
	})

	details, err := client.GetByID(context.Background(), "tt0111161")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"apikey": "test-key", "i": "tt0111161", "plot": "full"}, gotQuery)
	assert.Equal(t, "The Shawshank Redemption", details.Title)
	assert.Equal(t, "9.3", details.Rating)
}

func TestGetByIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Incorrect IMDb ID."}`))
	})

	_, err := client.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, movies.ErrMovieNotFound)
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"s":    q.Get("s"),
			"page": q.Get("page"),
			"type": q.Get("type"),
		}
		w.Write([]byte(`{
			"Response": "True",
			"Search": [
				{"imdbID": "tt0111161", "Title": "The Shawshank Redemption", "Year": "1994", "Poster": "http://img"},
				{"imdbID": "tt0068646", "Title": "The Godfather", "Year": "1972", "Poster": "N/A"}
			],
			"totalResults": "2"
		}`))
	})

	result, err := client.Search(context.Background(), "shawshank", 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"s": "shawshank", "page": "2", "type": "movie"}, gotQuery)
	assert.Equal(t, 2, result.TotalResults)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "tt0111161", result.Results[0].ImdbID)
}

func TestSearchNoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	})

	_, err := client.Search(context.Background(), "zzzzzzzz", 1)
	assert.ErrorIs(t, err, movies.ErrNoResults)
}

func TestServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetByID(context.Background(), "tt0111161")
	require.Error(t, err)
	assert.NotErrorIs(t, err, movies.ErrMovieNotFound)
}
