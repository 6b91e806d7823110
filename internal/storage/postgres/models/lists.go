package models

import (
	"context"
	"errors"
	"fmt"

	"cinelog/proj/internal/storage"
	"cinelog/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MovieListModel backs one of a user's movie identifier sets (favorites or
// watchlist). Membership is a composite primary key, so a duplicate add fails
// at the database rather than after an application-level scan.
type MovieListModel struct {
	DB    *pgxpool.Pool
	table string
}

func (m *MovieListModel) Add(ctx context.Context, userID int64, imdbID string) ([]string, error) {
	query := fmt.Sprintf("INSERT INTO %s (user_id, imdb_id) VALUES ($1, $2)", m.table)
	if _, err := m.DB.Exec(ctx, query, userID, imdbID); err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return m.List(ctx, userID)
}

func (m *MovieListModel) Remove(ctx context.Context, userID int64, imdbID string) ([]string, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE user_id = $1 AND imdb_id = $2", m.table)
	status, err := m.DB.Exec(ctx, query, userID, imdbID)
	if err != nil {
		return nil, err
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return m.List(ctx, userID)
}

func (m *MovieListModel) List(ctx context.Context, userID int64) ([]string, error) {
	query := fmt.Sprintf("SELECT imdb_id FROM %s WHERE user_id = $1 ORDER BY added_at", m.table)
	rows, _ := m.DB.Query(ctx, query, userID)
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return ids, nil
}
