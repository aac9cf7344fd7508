package messages

import (
	"context"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, m *models.Message) error {
	query := `
		INSERT INTO messages (companion_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, m.CompanionID, string(m.Role), m.Content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListRecent orders by created_at, then by insertion sequence so that two
// messages written in the same instant keep their write order.
func (r *PostgresRepository) ListRecent(ctx context.Context, companionID string, limit int, before *time.Time) ([]*models.Message, error) {
	query := `
		SELECT id, companion_id, role, content, created_at
		FROM messages
		WHERE companion_id = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC, seq DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, companionID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Message, 0, limit)
	for rows.Next() {
		var item models.Message
		var role string
		if err := rows.Scan(&item.ID, &item.CompanionID, &role, &item.Content, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Role = models.Role(role)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
