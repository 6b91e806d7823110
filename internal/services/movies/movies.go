package movies

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cinelog/proj/internal/domain/models"
	"cinelog/proj/internal/storage"

	"golang.org/x/sync/singleflight"
)

// cacheTTL is how long a fetched record is served without consulting the
// upstream provider again.
const cacheTTL = 7 * 24 * time.Hour

// trendingIDs is the fixed set of identifiers served by the trending endpoint.
var trendingIDs = []string{"tt0111161", "tt0068646", "tt0468569", "tt0071562", "tt0050083"}

type SearchItemDTO struct {
	ImdbID string `json:"imdb_id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Poster string `json:"poster"`
}

type SearchResultDTO struct {
	Results      []SearchItemDTO `json:"results"`
	Page         int             `json:"page"`
	TotalResults int             `json:"total_results"`
}

type MovieDetailsDTO struct {
	ImdbID   string
	Title    string
	Year     string
	Poster   string
	Plot     string
	Director string
	Actors   string
	Genre    string
	Rating   string
}

type MetadataProvider interface {
	Search(ctx context.Context, query string, page int) (*SearchResultDTO, error)
	GetByID(ctx context.Context, imdbID string) (*MovieDetailsDTO, error)
}

type MoviesStorage interface {
	GetByImdbID(ctx context.Context, imdbID string) (*models.Movie, error)
	Upsert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
}

type ReviewsStorage interface {
	ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error)
}

type MovieService struct {
	log      *slog.Logger
	storage  MoviesStorage
	reviews  ReviewsStorage
	provider MetadataProvider
	group    singleflight.Group
	now      func() time.Time
}

func New(log *slog.Logger, storage MoviesStorage, reviews ReviewsStorage, provider MetadataProvider) *MovieService {
	return &MovieService{
		log:      log,
		storage:  storage,
		reviews:  reviews,
		provider: provider,
		now:      time.Now,
	}
}

// Search passes the query through to the upstream provider. Results are not
// persisted.
func (s *MovieService) Search(ctx context.Context, query string, page int) (*SearchResultDTO, error) {
	const op = "movies.MovieService.Search"
	log := s.log.With("op", op, "query", query, "page", page)
	result, err := s.provider.Search(ctx, query, page)
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			log.Info("no search results")
			return nil, err
		}
		log.Error(err.Error())
		return nil, err
	}
	return result, nil
}

// Get returns the record for the given external identifier, served from the
// store while its cache expiry is still in the future and refetched from the
// upstream provider otherwise. A stale record is never used as a fallback for
// an upstream failure.
func (s *MovieService) Get(ctx context.Context, imdbID string) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "imdb_id", imdbID)
	movie, err := s.storage.GetByImdbID(ctx, imdbID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	if movie != nil && movie.IsFresh(s.now()) {
		return s.attachReviews(ctx, movie)
	}
	// Collapse simultaneous misses for the same identifier into a single
	// upstream call. The shared fetch must survive cancellation of whichever
	// request happens to run it.
	v, err, _ := s.group.Do(imdbID, func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx), imdbID)
	})
	if err != nil {
		return nil, err
	}
	// Every coalesced caller receives the same pointer, so attach reviews to
	// a copy.
	movie = new(models.Movie)
	*movie = *v.(*models.Movie)
	return s.attachReviews(ctx, movie)
}

func (s *MovieService) refresh(ctx context.Context, imdbID string) (*models.Movie, error) {
	const op = "movies.MovieService.refresh"
	log := s.log.With("op", op, "imdb_id", imdbID)
	details, err := s.provider.GetByID(ctx, imdbID)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			log.Info("movie not found upstream")
			return nil, err
		}
		log.Error(err.Error())
		return nil, err
	}
	movie, err := s.storage.Upsert(ctx, &models.Movie{
		ImdbID:      details.ImdbID,
		Title:       details.Title,
		Year:        details.Year,
		Poster:      details.Poster,
		Plot:        details.Plot,
		Director:    details.Director,
		Actors:      details.Actors,
		Genre:       details.Genre,
		Rating:      details.Rating,
		CacheExpiry: s.now().Add(cacheTTL),
	})
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

// Trending serves the fixed identifier list through the same per-identifier
// cache flow, sequentially, omitting identifiers that fail.
func (s *MovieService) Trending(ctx context.Context) ([]models.Movie, error) {
	const op = "movies.MovieService.Trending"
	log := s.log.With("op", op)
	result := make([]models.Movie, 0, len(trendingIDs))
	for _, imdbID := range trendingIDs {
		movie, err := s.Get(ctx, imdbID)
		if err != nil {
			log.Warn("skipping trending movie", "imdb_id", imdbID, "errMsg", err.Error())
			continue
		}
		result = append(result, *movie)
	}
	return result, nil
}

func (s *MovieService) attachReviews(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	reviews, err := s.reviews.ListForMovie(ctx, movie.ID)
	if err != nil {
		s.log.Error("failed to load reviews", "imdb_id", movie.ImdbID, "errMsg", err.Error())
		return nil, err
	}
	movie.Reviews = reviews
	return movie, nil
}
