// Package services contains the server-side business logic. This file
// implements AccountService: registration with contact reconciliation,
// login, token refresh, and self-service account deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterResult carries the contact and credential record a registration
// resolved to, both fully linked.
type RegisterResult struct {
	Contact *models.Contact
	User    *models.User
}

// AccountService provides authentication-related operations:
//   - Register: idempotent-by-email account provisioning with contact linkage
//   - Login: verify credentials and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
//   - DeleteAccount: self-service deletion, cascading to the linked contact
type AccountService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAccountService constructs an AccountService using repositories and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register provisions an account for email, reconciling it against any
// pre-existing contact with the same address:
//
//   - no contact: create a new user and a new contact linked to it;
//   - contact without a credential: create the user and link it, keeping the
//     contact's original name;
//   - contact whose credential has no usable secret: set the password on the
//     existing user, creating nothing;
//   - contact backed by a registered user: rejected up front as a validation
//     error; reaching that branch inside the transaction is an invariant
//     violation.
//
// The whole sequence runs in one transaction.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*RegisterResult, error) {

	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	// Precondition: a registered account already owns this email.
	existing, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if existing.HasUsableSecret() {
		return nil, fmt.Errorf("%w: a user with this email address is already registered", common.ErrorValidation)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var result *RegisterResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		result, txErr = s.reconcile(ctx, tx, email, hash, name)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AccountService) reconcile(ctx context.Context, tx dbx.DBTX, email, hash, name string) (*RegisterResult, error) {
	userRepo := s.repomanager.Users(tx)
	contactRepo := s.repomanager.Contacts(tx)

	contact, err := contactRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	// Brand new person: no contact with this email exists yet.
	if contact == nil {
		user, err := userRepo.Create(ctx, &models.User{Email: email, PasswordHash: hash, Active: true})
		if err != nil {
			return nil, err
		}
		contact, err = contactRepo.Create(ctx, &models.Contact{UserID: &user.ID, Name: name, Email: email})
		if err != nil {
			return nil, err
		}
		return &RegisterResult{Contact: contact, User: user}, nil
	}

	var user *models.User
	if contact.UserID != nil {
		user, err = userRepo.GetByID(ctx, *contact.UserID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
	}

	switch contact.State(user) {
	case models.StateUnlinked:
		// Promote a pre-existing unregistered contact, e.g. one added as a
		// task assignee before ever signing up. The contact keeps its name.
		user, err = userRepo.Create(ctx, &models.User{Email: email, PasswordHash: hash, Active: true})
		if err != nil {
			return nil, err
		}
		if err := contactRepo.Link(ctx, contact.ID, user.ID); err != nil {
			return nil, err
		}
		contact.UserID = &user.ID
		return &RegisterResult{Contact: contact, User: user}, nil

	case models.StateLinkedNoSecret:
		// A provisioned but password-less account: set the secret in place.
		if err := userRepo.SetPassword(ctx, user.ID, hash); err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		return &RegisterResult{Contact: contact, User: user}, nil

	default:
		// The precondition check makes this branch unreachable; reaching it
		// indicates a race or logic defect.
		return nil, fmt.Errorf("%w: contact %d already linked to a registered user", common.ErrorInternal, contact.ID)
	}
}

// Login verifies email and password and, on success, returns the user and a
// new TokenPair. Unknown email, wrong password and inactive account all
// produce the same error, so callers cannot enumerate accounts.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if !user.HasUsableSecret() || !checkPassword(user.PasswordHash, password) {
		return nil, nil, common.ErrorUnauthorized
	}
	if !user.Active {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// IssueTokens mints a token pair for an already-verified user, such as one
// that just registered.
func (s *AccountService) IssueTokens(ctx context.Context, userID string) (*TokenPair, error) {
	return s.generateTokenPair(ctx, userID, s.db)
}

// Logout invalidates a refresh token. Unknown tokens are not an error.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *AccountService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// DeleteAccount removes the authenticated user's own credential record
// outright. The schema cascades the delete to the linked contact, its task
// assignments, and the user's refresh tokens. Because the owner is acting on
// themselves, the contact deletion guard does not apply here.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
}

// --- helpers below ---

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

func (s *AccountService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *AccountService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *AccountService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
