// Package attachments persists metadata about files attached to notes. The
// file bytes themselves live in object storage.
package attachments

import (
	"context"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Attachment) error
	Get(ctx context.Context, id, noteID, userID string) (*models.Attachment, error)
	ListByNote(ctx context.Context, noteID, userID string) ([]*models.Attachment, error)
	// MarkUploaded flips upload_status to completed. Exactly one row must match.
	MarkUploaded(ctx context.Context, id, userID string) error
}
