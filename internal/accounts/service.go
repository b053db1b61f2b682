package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/gamingtechpro/storefront-backend/internal/validation"
	"github.com/gamingtechpro/storefront-backend/pkg/auth"
	"github.com/gamingtechpro/storefront-backend/pkg/auth/session"
	"github.com/gamingtechpro/storefront-backend/pkg/config"
	"github.com/gamingtechpro/storefront-backend/pkg/enums"
	"github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
)

const minPasswordLength = 6

// RegisterInput is the signup payload.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is the signin payload.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult pairs the signed token with the account's public view.
type AuthResult struct {
	Token   string
	Profile Profile
}

// Service handles registration and login.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, tokenID string) error
	Profile(ctx context.Context, accountID string) (*Profile, error)
	Activity(ctx context.Context, accountID string) ([]ActivityEntry, error)
}

type service struct {
	repo     *Repository
	sessions *session.Manager
	jwt      config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(repo *Repository, sessions *session.Manager, jwt config.JWTConfig, logg *logger.Logger, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts: repository is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("accounts: session manager is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("accounts: logger is required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, sessions: sessions, jwt: jwt, logg: logg, now: now}, nil
}

// Register validates the payload, rejects duplicate emails and signs
// the new account straight in.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if fields := registerFieldErrors(input); len(fields) > 0 {
		var combined error
		for field, message := range fields {
			combined = multierr.Append(combined, fmt.Errorf("%s: %s", field, message))
		}
		s.logg.Warn(s.logg.WithField(ctx, "error", combined.Error()), "signup payload rejected")
		return nil, errors.New(errors.CodeValidation, "invalid signup details").WithDetails(fields)
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, errors.New(errors.CodeConflict, "an account with this email already exists")
	} else if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeNotFound {
		return nil, err
	}

	account := Account{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Password:  input.Password,
		Role:      enums.AccountRoleUser,
		CreatedAt: s.now(),
	}
	if err := s.repo.Append(ctx, account); err != nil {
		return nil, err
	}

	result, err := s.startSession(ctx, account)
	if err != nil {
		return nil, err
	}
	s.recordActivity(ctx, account.ID, "signup")
	s.logg.Info(s.logg.WithAccountID(ctx, account.ID), "account registered")
	return result, nil
}

// Login checks credentials with an exact password match. Unknown email
// and wrong password produce the same error so the response does not
// reveal which one failed.
func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if typed := errors.As(err); typed != nil && typed.Code() == errors.CodeNotFound {
			return nil, errors.New(errors.CodeUnauthorized, "invalid email or password")
		}
		return nil, err
	}
	if account.Password != input.Password {
		return nil, errors.New(errors.CodeUnauthorized, "invalid email or password")
	}

	result, err := s.startSession(ctx, *account)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RecordLastLogin(ctx, account.ID, s.now()); err != nil {
		s.logg.Error(ctx, "failed to record last login", err)
	}
	s.recordActivity(ctx, account.ID, "login")
	s.logg.Info(s.logg.WithAccountID(ctx, account.ID), "account logged in")
	return result, nil
}

func (s *service) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Revoke(ctx, tokenID)
}

func (s *service) Profile(ctx context.Context, accountID string) (*Profile, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	profile := account.Profile()
	return &profile, nil
}

func (s *service) Activity(ctx context.Context, accountID string) ([]ActivityEntry, error) {
	return s.repo.Activity(ctx, accountID)
}

func (s *service) startSession(ctx context.Context, account Account) (*AuthResult, error) {
	jti := uuid.NewString()
	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		JTI:       jti,
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to mint access token")
	}
	if err := s.sessions.Create(ctx, jti, account.ID); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to create session")
	}
	return &AuthResult{Token: token, Profile: account.Profile()}, nil
}

func (s *service) recordActivity(ctx context.Context, accountID, action string) {
	entry := ActivityEntry{Action: action, OccurredAt: s.now()}
	if err := s.repo.AppendActivity(ctx, accountID, entry); err != nil {
		s.logg.Error(ctx, "failed to append activity entry", err)
	}
}

func registerFieldErrors(input RegisterInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(input.FirstName) == "" {
		fields["first_name"] = "First name is required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields["last_name"] = "Last name is required"
	}
	if !validation.Email(input.Email) {
		fields["email"] = "Please enter a valid email address"
	}
	if len(input.Password) < minPasswordLength {
		fields["password"] = "Password must be at least 6 characters"
	}
	if input.Password != input.ConfirmPassword {
		fields["confirm_password"] = "Passwords do not match"
	}
	return fields
}
