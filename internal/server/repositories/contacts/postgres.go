package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contactColumns = `id, user_id, name, email, color, online, phone`

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {

	if contact.Color == "" {
		contact.Color = "blue"
	}

	query := `
		INSERT INTO contacts (user_id, name, email, color, online, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		contact.UserID, contact.Name, contact.Email, contact.Color,
		contact.Online, contact.Phone).Scan(&contact.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: contact email already in use", common.ErrorValidation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return scanContact(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE lower(email) = lower($1)`
	return scanContact(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1`
	return scanContact(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Contact
	for rows.Next() {
		contact := models.Contact{}
		var phone sql.NullString
		var userID sql.NullString
		if err := rows.Scan(&contact.ID, &userID, &contact.Name, &contact.Email,
			&contact.Color, &contact.Online, &phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if userID.Valid {
			contact.UserID = &userID.String
		}
		if phone.Valid {
			contact.Phone = &phone.String
		}
		result = append(result, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET user_id = $2, name = $3, email = $4, color = $5, online = $6, phone = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.UserID, contact.Name, contact.Email,
		contact.Color, contact.Online, contact.Phone)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: contact email already in use", common.ErrorValidation)
		}
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Link(ctx context.Context, id int64, userID string) error {
	query := `
		UPDATE contacts SET user_id = $2
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM contacts
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func scanContact(row *sql.Row) (*models.Contact, error) {
	contact := &models.Contact{}
	var phone sql.NullString
	var userID sql.NullString

	err := row.Scan(&contact.ID, &userID, &contact.Name, &contact.Email,
		&contact.Color, &contact.Online, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if userID.Valid {
		contact.UserID = &userID.String
	}
	if phone.Valid {
		contact.Phone = &phone.String
	}
	return contact, nil
}
