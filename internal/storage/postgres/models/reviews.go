package models

import (
	"context"
	"errors"

	"cinelog/proj/internal/domain/models"
	"cinelog/proj/internal/storage"
	"cinelog/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewModel struct {
	DB *pgxpool.Pool
}

// Insert relies on the UNIQUE(movie_id, user_id) constraint to reject a second
// review by the same user atomically, so concurrent duplicate submissions
// cannot both land.
func (m *ReviewModel) Insert(ctx context.Context, movieID, userID int64, rating int, comment string) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO reviews (movie_id, user_id, rating, comment) VALUES ($1, $2, $3, $4) RETURNING *",
		movieID,
		userID,
		rating,
		comment,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &review, nil
}

func (m *ReviewModel) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	rows, _ := m.DB.Query(ctx, "SELECT * FROM reviews WHERE movie_id = $1 ORDER BY created_at", movieID)
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
