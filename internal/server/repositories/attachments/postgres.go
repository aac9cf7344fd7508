package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/supreassistant/internal/common"
	"github.com/dmitrijs2005/supreassistant/internal/dbx"
	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// PostgresRepository implements attachment storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a pending attachment row and fills ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, a *models.Attachment) error {
	query := `
		INSERT INTO note_attachments (note_id, user_id, file_name, storage_key, upload_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, a.NoteID, a.UserID, a.FileName, a.StorageKey, a.UploadStatus).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Get returns a single attachment row used to authorize and build presigned URLs.
func (r *PostgresRepository) Get(ctx context.Context, id, noteID, userID string) (*models.Attachment, error) {
	query := `
		SELECT id, note_id, user_id, file_name, storage_key, upload_status, created_at
		FROM note_attachments
		WHERE id = $1 AND note_id = $2 AND user_id = $3
	`
	a := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, id, noteID, userID).
		Scan(&a.ID, &a.NoteID, &a.UserID, &a.FileName, &a.StorageKey, &a.UploadStatus, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByNote(ctx context.Context, noteID, userID string) ([]*models.Attachment, error) {
	query := `
		SELECT id, note_id, user_id, file_name, storage_key, upload_status, created_at
		FROM note_attachments
		WHERE note_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select attachments: %w", err)
	}
	defer rows.Close()

	result := []*models.Attachment{}
	for rows.Next() {
		var item models.Attachment
		if err := rows.Scan(&item.ID, &item.NoteID, &item.UserID, &item.FileName, &item.StorageKey, &item.UploadStatus, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, id, userID string) error {
	query := `UPDATE note_attachments SET upload_status = $3 WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID, models.UploadCompleted)
	if err != nil {
		return fmt.Errorf("failed to mark uploaded: %w", err)
	}
	return dbx.ExpectOne(res)
}
