// Package refreshtokens provides a PostgreSQL-backed repository for the
// refresh tokens used in the authentication flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

type Repository interface {
	// Create inserts a new refresh token for userID with an expiry time of
	// now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns the refresh token row for the given token string, or
	// common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string.
	Delete(ctx context.Context, token string) error
}
