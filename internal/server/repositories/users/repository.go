// Package users declares the repository contract for user accounts and its
// PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user and fills its generated ID and timestamps.
	// A duplicate email or username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindConflict returns a user other than excludeID holding email or
	// username, or common.ErrorNotFound when both are free.
	FindConflict(ctx context.Context, email, username, excludeID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}
