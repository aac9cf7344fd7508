package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/dbx"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, title, description, start_time, end_time, location, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*models.Event, error) {
	e := &models.Event{}
	err := s.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.Location, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create inserts e and fills ID, CreatedAt and UpdatedAt.
func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (user_id, title, description, start_time, end_time, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, e.UserID, e.Title, e.Description, e.StartTime, e.EndTime, e.Location).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM events WHERE id = $1 AND user_id = $2`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, window *models.TimeRange) ([]*models.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM events WHERE user_id = $1`
	args := []any{userID}
	if window != nil {
		query += ` AND start_time BETWEEN $2 AND $3`
		args = append(args, window.From, window.To)
	}
	query += ` ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}
	defer rows.Close()

	result := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes every mutable field of e and refreshes UpdatedAt.
func (r *PostgresRepository) Update(ctx context.Context, e *models.Event) error {
	query := `
		UPDATE events
		SET title = $3, description = $4, start_time = $5, end_time = $6, location = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, e.ID, e.UserID, e.Title, e.Description, e.StartTime, e.EndTime, e.Location).
		Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOne(res)
}
