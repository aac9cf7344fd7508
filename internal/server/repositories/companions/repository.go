// Package companions persists the per-user assistant configuration.
package companions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// Repository persists companions. Every lookup is keyed by the owning user.
type Repository interface {
	// GetByUserID returns the user's companion or common.ErrorNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.Companion, error)
	// CreateIfAbsent inserts c unless the user already has a companion.
	// It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, c *models.Companion) (bool, error)
	// Update writes name, model and system prompt.
	Update(ctx context.Context, c *models.Companion) error
	// Touch sets the last-interaction timestamp.
	Touch(ctx context.Context, id string, at time.Time) error
}
