package users

import (
	"context"
	"log/slog"
	"testing"

	"cinelog/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeList struct {
	byUser map[int64][]string
}

func newFakeList() *fakeList {
	return &fakeList{byUser: make(map[int64][]string)}
}

func (l *fakeList) Add(_ context.Context, userID int64, imdbID string) ([]string, error) {
	for _, id := range l.byUser[userID] {
		if id == imdbID {
			return nil, storage.ErrConflict
		}
	}
	l.byUser[userID] = append(l.byUser[userID], imdbID)
	return l.byUser[userID], nil
}

func (l *fakeList) Remove(_ context.Context, userID int64, imdbID string) ([]string, error) {
	ids := l.byUser[userID]
	for i, id := range ids {
		if id == imdbID {
			l.byUser[userID] = append(ids[:i:i], ids[i+1:]...)
			return l.byUser[userID], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (l *fakeList) List(_ context.Context, userID int64) ([]string, error) {
	return l.byUser[userID], nil
}

func newTestService() (*UserListsService, *fakeList, *fakeList) {
	favorites := newFakeList()
	watchlist := newFakeList()
	return New(slog.Default(), favorites, watchlist), favorites, watchlist
}

func TestAddFavorite(t *testing.T) {
	svc, _, _ := newTestService()

	list, err := svc.AddFavorite(context.Background(), 1, "tt0111161")
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0111161"}, list)

	list, err = svc.AddFavorite(context.Background(), 1, "tt0068646")
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0111161", "tt0068646"}, list)
}

func TestAddFavoriteTwiceRejected(t *testing.T) {
	svc, favorites, _ := newTestService()

	_, err := svc.AddFavorite(context.Background(), 1, "tt0111161")
	require.NoError(t, err)
	_, err = svc.AddFavorite(context.Background(), 1, "tt0111161")
	assert.ErrorIs(t, err, ErrAlreadyInFavorites)
	assert.Equal(t, []string{"tt0111161"}, favorites.byUser[1])
}

func TestRemoveFavoriteAbsentRejected(t *testing.T) {
	svc, favorites, _ := newTestService()

	_, err := svc.RemoveFavorite(context.Background(), 1, "tt0111161")
	assert.ErrorIs(t, err, ErrNotInFavorites)
	assert.Empty(t, favorites.byUser[1])
}

func TestWatchlistToggling(t *testing.T) {
	svc, _, _ := newTestService()

	list, err := svc.AddToWatchlist(context.Background(), 1, "tt0468569")
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0468569"}, list)

	_, err = svc.AddToWatchlist(context.Background(), 1, "tt0468569")
	assert.ErrorIs(t, err, ErrAlreadyInWatchlist)

	list, err = svc.RemoveFromWatchlist(context.Background(), 1, "tt0468569")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.RemoveFromWatchlist(context.Background(), 1, "tt0468569")
	assert.ErrorIs(t, err, ErrNotInWatchlist)
}

func TestListsAreIndependentPerUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddFavorite(context.Background(), 1, "tt0111161")
	require.NoError(t, err)
	_, err = svc.AddToWatchlist(context.Background(), 2, "tt0111161")
	require.NoError(t, err)

	favorites, watchlist, err := svc.Lists(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0111161"}, favorites)
	assert.Empty(t, watchlist)
}
