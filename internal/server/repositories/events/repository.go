// Package events persists calendar events. All reads and writes are scoped
// by the owning user, so a foreign id behaves exactly like a missing one.
package events

import (
	"context"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Event) error
	Get(ctx context.Context, id, userID string) (*models.Event, error)
	// List returns the user's events ordered by start time. A nil window
	// returns all of them.
	List(ctx context.Context, userID string, window *models.TimeRange) ([]*models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id, userID string) error
}
