package companions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Companion, error) {
	query := `
		SELECT id, user_id, name, model, system_prompt, last_interaction_at, created_at, updated_at
		FROM companions
		WHERE user_id = $1
	`
	c := &models.Companion{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Model, &c.SystemPrompt, &c.LastInteractionAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// CreateIfAbsent relies on the unique user_id constraint, so concurrent
// first accesses for one user still leave a single row.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, c *models.Companion) (bool, error) {
	query := `
		INSERT INTO companions (user_id, name, model, system_prompt)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, c.UserID, c.Name, c.Model, c.SystemPrompt)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Companion) error {
	query := `
		UPDATE companions
		SET name = $2, model = $3, system_prompt = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Model, c.SystemPrompt).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Touch(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE companions SET last_interaction_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOne(res)
}
