package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
)

// ContactDetail pairs a contact with its derived registration state, so the
// wire layer can expose has_password_set without re-querying.
type ContactDetail struct {
	Contact models.Contact
	State   models.RegistrationState
}

// ContactInput carries the writable contact fields.
type ContactInput struct {
	Name   string
	Email  string
	Color  string
	Online bool
	Phone  *string
}

// ContactService provides contact CRUD plus the deletion guard that keeps
// registered accounts from being orphaned by a third-party delete.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager) *ContactService {
	return &ContactService{db: db, repomanager: m}
}

func (s *ContactService) List(ctx context.Context) ([]ContactDetail, error) {
	contactList, err := s.repomanager.Contacts(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ContactDetail, 0, len(contactList))
	for i := range contactList {
		detail, err := s.withState(ctx, s.db, &contactList[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*ContactDetail, error) {
	contact, err := s.repomanager.Contacts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withState(ctx, s.db, contact)
}

func (s *ContactService) Create(ctx context.Context, input ContactInput) (*ContactDetail, error) {
	if err := validateContactInput(&input); err != nil {
		return nil, err
	}

	contact, err := s.repomanager.Contacts(s.db).Create(ctx, &models.Contact{
		Name:   input.Name,
		Email:  input.Email,
		Color:  input.Color,
		Online: input.Online,
		Phone:  input.Phone,
	})
	if err != nil {
		return nil, err
	}
	return &ContactDetail{Contact: *contact, State: models.StateUnlinked}, nil
}

func (s *ContactService) Update(ctx context.Context, id int64, input ContactInput) (*ContactDetail, error) {
	if err := validateContactInput(&input); err != nil {
		return nil, err
	}

	repo := s.repomanager.Contacts(s.db)
	contact, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The credential link is never writable through contact updates.
	contact.Name = input.Name
	contact.Email = input.Email
	contact.Color = input.Color
	contact.Online = input.Online
	contact.Phone = input.Phone

	if err := repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return s.withState(ctx, s.db, contact)
}

// Delete applies the deletion guard:
//
//   - contact backed by a registered user: refused, nothing touched;
//   - contact linked to a password-less user: the user is deleted and the
//     cascade removes the contact;
//   - bare contact: deleted directly.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		contactRepo := s.repomanager.Contacts(tx)

		contact, err := contactRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user, err := s.linkedUser(ctx, tx, contact)
		if err != nil {
			return err
		}

		switch contact.State(user) {
		case models.StateLinkedRegistered:
			return fmt.Errorf("%w: this contact belongs to a registered user; delete the account through account management or clear its password first", common.ErrorPermissionDenied)
		case models.StateLinkedNoSecret:
			// Deleting the credential record cascades to the contact.
			return s.repomanager.Users(tx).Delete(ctx, user.ID)
		default:
			return contactRepo.Delete(ctx, id)
		}
	})
}

func (s *ContactService) linkedUser(ctx context.Context, db dbx.DBTX, contact *models.Contact) (*models.User, error) {
	if contact.UserID == nil {
		return nil, nil
	}
	user, err := s.repomanager.Users(db).GetByID(ctx, *contact.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *ContactService) withState(ctx context.Context, db dbx.DBTX, contact *models.Contact) (*ContactDetail, error) {
	user, err := s.linkedUser(ctx, db, contact)
	if err != nil {
		return nil, err
	}
	return &ContactDetail{Contact: *contact, State: contact.State(user)}, nil
}

func validateContactInput(input *ContactInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", common.ErrorValidation)
	}
	if input.Color == "" {
		input.Color = "blue"
	}
	return nil
}
