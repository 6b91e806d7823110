package users

import (
	"context"
	"errors"
	"log/slog"

	"cinelog/proj/internal/storage"
)

// MovieListStorage is one of a user's movie identifier sets. Identifiers are
// bare provider keys; no corresponding movie record is required to exist.
type MovieListStorage interface {
	Add(ctx context.Context, userID int64, imdbID string) ([]string, error)
	Remove(ctx context.Context, userID int64, imdbID string) ([]string, error)
	List(ctx context.Context, userID int64) ([]string, error)
}

type UserListsService struct {
	log       *slog.Logger
	favorites MovieListStorage
	watchlist MovieListStorage
}

func New(log *slog.Logger, favorites, watchlist MovieListStorage) *UserListsService {
	return &UserListsService{
		log:       log,
		favorites: favorites,
		watchlist: watchlist,
	}
}

func (s *UserListsService) AddFavorite(ctx context.Context, userID int64, imdbID string) ([]string, error) {
	const op = "users.UserListsService.AddFavorite"
	return s.add(ctx, s.log.With("op", op), s.favorites, userID, imdbID, ErrAlreadyInFavorites)
}

func (s *UserListsService) RemoveFavorite(ctx context.Context, userID int64, imdbID string) ([]string, error) {
	const op = "users.UserListsService.RemoveFavorite"
	return s.remove(ctx, s.log.With("op", op), s.favorites, userID, imdbID, ErrNotInFavorites)
}

func (s *UserListsService) AddToWatchlist(ctx context.Context, userID int64, imdbID string) ([]string, error) {
	const op = "users.UserListsService.AddToWatchlist"
	return s.add(ctx, s.log.With("op", op), s.watchlist, userID, imdbID, ErrAlreadyInWatchlist)
}

func (s *UserListsService) RemoveFromWatchlist(ctx context.Context, userID int64, imdbID string) ([]string, error) {
	const op = "users.UserListsService.RemoveFromWatchlist"
	return s.remove(ctx, s.log.With("op", op), s.watchlist, userID, imdbID, ErrNotInWatchlist)
}

// Lists returns both identifier sets for the profile view.
func (s *UserListsService) Lists(ctx context.Context, userID int64) (favorites, watchlist []string, err error) {
	const op = "users.UserListsService.Lists"
	log := s.log.With("op", op, "user_id", userID)
	favorites, err = s.favorites.List(ctx, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, nil, err
	}
	watchlist, err = s.watchlist.List(ctx, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, nil, err
	}
	return favorites, watchlist, nil
}

func (s *UserListsService) add(ctx context.Context, log *slog.Logger, list MovieListStorage, userID int64, imdbID string, conflictErr error) ([]string, error) {
	log = log.With("user_id", userID, "imdb_id", imdbID)
	ids, err := list.Add(ctx, userID, imdbID)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("identifier already in list")
			return nil, conflictErr
		}
		log.Error(err.Error())
		return nil, err
	}
	return ids, nil
}

func (s *UserListsService) remove(ctx context.Context, log *slog.Logger, list MovieListStorage, userID int64, imdbID string, missingErr error) ([]string, error) {
	log = log.With("user_id", userID, "imdb_id", imdbID)
	ids, err := list.Remove(ctx, userID, imdbID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("identifier not in list")
			return nil, missingErr
		}
		log.Error(err.Error())
		return nil, err
	}
	return ids, nil
}
