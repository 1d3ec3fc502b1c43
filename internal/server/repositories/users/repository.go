// Package users provides persistence for credential records: the login
// identities that may back a contact.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. An empty PasswordHash is stored as NULL,
	// which models a provisioned account with no usable secret.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail looks a user up case-insensitively by email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// SetPassword replaces the stored password hash for an existing user.
	SetPassword(ctx context.Context, id string, passwordHash string) error

	// Delete removes a user. The schema cascades the delete to the linked
	// contact, that contact's task assignments, and the user's refresh
	// tokens — this is the documented cascade, not an invisible trigger.
	Delete(ctx context.Context, id string) error
}
