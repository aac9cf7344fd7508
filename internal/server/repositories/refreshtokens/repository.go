// Package refreshtokens stores the opaque refresh tokens that let clients
// obtain new access tokens without re-entering credentials.
package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores token. Expires must already be set by the caller.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Find looks up a refresh token by its opaque token string.
	// Returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes every token of userID that expired before now.
	DeleteExpired(ctx context.Context, userID string) error
}
