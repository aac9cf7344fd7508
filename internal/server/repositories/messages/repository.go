// Package messages persists the immutable turns of companion conversations.
package messages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// Repository persists messages. There is deliberately no update operation.
type Repository interface {
	// Create inserts m and fills its ID and CreatedAt.
	Create(ctx context.Context, m *models.Message) error
	// ListRecent returns at most limit messages of the companion, newest
	// first. A non-nil before excludes messages created at or after it.
	ListRecent(ctx context.Context, companionID string, limit int, before *time.Time) ([]*models.Message, error)
}
