// Package contacts provides persistence for contact records, including the
// optional one-to-one link to a credential record.
package contacts

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)

	GetByID(ctx context.Context, id int64) (*models.Contact, error)

	// GetByEmail looks a contact up case-insensitively by email.
	GetByEmail(ctx context.Context, email string) (*models.Contact, error)

	// GetByUserID returns the contact linked to the given user, if any.
	GetByUserID(ctx context.Context, userID string) (*models.Contact, error)

	List(ctx context.Context) ([]models.Contact, error)

	// Update persists all mutable fields of the contact, including the user
	// link.
	Update(ctx context.Context, contact *models.Contact) error

	// Link attaches a credential record to an existing contact.
	Link(ctx context.Context, id int64, userID string) error

	Delete(ctx context.Context, id int64) error
}
