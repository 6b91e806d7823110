package reviews

import (
	"context"
	"errors"
	"log/slog"

	"cinelog/proj/internal/domain/models"
	"cinelog/proj/internal/storage"
)

type MovieProvider interface {
	Get(ctx context.Context, imdbID string) (*models.Movie, error)
}

type ReviewsStorage interface {
	Insert(ctx context.Context, movieID, userID int64, rating int, comment string) (*models.Review, error)
}

type ReviewService struct {
	log     *slog.Logger
	movies  MovieProvider
	storage ReviewsStorage
}

func New(log *slog.Logger, movies MovieProvider, storage ReviewsStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		movies:  movies,
		storage: storage,
	}
}

// Add attaches a review to the record for the given external identifier,
// creating the record through the cache flow first if it does not exist yet.
// A review can only attach to a movie confirmed to exist upstream.
func (s *ReviewService) Add(ctx context.Context, imdbID string, userID int64, rating int, comment string) (*models.Review, error) {
	const op = "reviews.ReviewService.Add"
	log := s.log.With("op", op, "imdb_id", imdbID, "user_id", userID)
	movie, err := s.movies.Get(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	review, err := s.storage.Insert(ctx, movie.ID, userID, rating, comment)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("movie already reviewed by user")
			return nil, ErrAlreadyReviewed
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}
