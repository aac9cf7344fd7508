// Package notes persists free-form user notes, owner-scoped like events.
package notes

import (
	"context"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Note) error
	Get(ctx context.Context, id, userID string) (*models.Note, error)
	// List returns the user's notes, most recently updated first.
	List(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, n *models.Note) error
	Delete(ctx context.Context, id, userID string) error
}
