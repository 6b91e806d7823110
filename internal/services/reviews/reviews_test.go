package reviews

import (
	"context"
	"log/slog"
	"testing"

	"cinelog/proj/internal/domain/models"
	"cinelog/proj/internal/services/movies"
	"cinelog/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMovies struct {
	movie *models.Movie
	err   error
	calls int
}

func (f *fakeMovies) Get(_ context.Context, imdbID string) (*models.Movie, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.movie, nil
}

type fakeReviewStore struct {
	reviewed map[[2]int64]bool
	nextID   int64
}

func (f *fakeReviewStore) Insert(_ context.Context, movieID, userID int64, rating int, comment string) (*models.Review, error) {
	key := [2]int64{movieID, userID}
	if f.reviewed[key] {
		return nil, storage.ErrConflict
	}
	if f.reviewed == nil {
		f.reviewed = make(map[[2]int64]bool)
	}
	f.reviewed[key] = true
	f.nextID++
	return &models.Review{ID: f.nextID, MovieID: movieID, UserID: userID, Rating: rating, Comment: comment}, nil
}

func TestAddReview(t *testing.T) {
	moviesSvc := &fakeMovies{movie: &models.Movie{ID: 1, ImdbID: "tt0111161"}}
	store := &fakeReviewStore{}
	svc := New(slog.Default(), moviesSvc, store)

	review, err := svc.Add(context.Background(), "tt0111161", 7, 9, "Great")
	require.NoError(t, err)
	assert.Equal(t, 9, review.Rating)
	assert.Equal(t, int64(7), review.UserID)
	// movie is resolved through the cache flow, creating it on demand
	assert.Equal(t, 1, moviesSvc.calls)
}

func TestAddReviewTwiceRejected(t *testing.T) {
	moviesSvc := &fakeMovies{movie: &models.Movie{ID: 1, ImdbID: "tt0111161"}}
	store := &fakeReviewStore{}
	svc := New(slog.Default(), moviesSvc, store)

	_, err := svc.Add(context.Background(), "tt0111161", 7, 9, "Great")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "tt0111161", 7, 10, "Even better")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestAddReviewUnknownMovie(t *testing.T) {
	moviesSvc := &fakeMovies{err: movies.ErrMovieNotFound}
	svc := New(slog.Default(), moviesSvc, &fakeReviewStore{})

	_, err := svc.Add(context.Background(), "tt9999999", 7, 9, "Great")
	assert.ErrorIs(t, err, movies.ErrMovieNotFound)
}
