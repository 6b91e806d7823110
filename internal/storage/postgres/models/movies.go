package models

import (
	"context"
	"errors"

	"cinelog/proj/internal/domain/models"
	"cinelog/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

func (m *MovieModel) GetByImdbID(ctx context.Context, imdbID string) (*models.Movie, error) {
	rows, err := m.DB.Query(ctx, "SELECT * FROM movies WHERE imdb_id = $1", imdbID)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// Upsert inserts a movie keyed by its external identifier or, if a record for
// that identifier already exists, overwrites every fetched field and the cache
// expiry. Reviews live in their own table and survive the overwrite.
func (m *MovieModel) Upsert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (imdb_id, title, year, poster, plot, director, actors, genre, rating, cache_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (imdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			year = EXCLUDED.year,
			poster = EXCLUDED.poster,
			plot = EXCLUDED.plot,
			director = EXCLUDED.director,
			actors = EXCLUDED.actors,
			genre = EXCLUDED.genre,
			rating = EXCLUDED.rating,
			cache_expiry = EXCLUDED.cache_expiry,
			updated_at = now()
		RETURNING *`,
		movie.ImdbID,
		movie.Title,
		movie.Year,
		movie.Poster,
		movie.Plot,
		movie.Director,
		movie.Actors,
		movie.Genre,
		movie.Rating,
		movie.CacheExpiry,
	)
	upserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return &upserted, nil
}
