// Package service implements the portal's business logic on top of the
// store interfaces. HTTP handlers translate these results to wire
// responses and never touch the database directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/pkg/cryptox"
	"github.com/stuccorite/fieldforms/pkg/idx"
	"github.com/stuccorite/fieldforms/pkg/jwtx"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// AuthService handles registration, password login and session token
// issuance.
type AuthService struct {
	Store      store.Store
	Tokens     *jwtx.HS256
	InviteCode string
	SessionTTL time.Duration
	PendingTTL time.Duration

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type RegisterParams struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	InviteCode string
}

// Register creates an account and signs the user straight in. The
// invite code gates self-signup and is matched case-insensitively;
// username and email must both be unused.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*domain.User, string, error) {
	if !strings.EqualFold(strings.TrimSpace(p.InviteCode), s.InviteCode) {
		return nil, "", ErrInvalidInviteCode
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           idx.New().String(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		FullName:     p.FullName,
		Role:         "employee",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Work out which uniqueness constraint tripped.
			if existing, lookupErr := s.Store.Users().GetByLogin(ctx, p.Email); lookupErr == nil && existing.Email == p.Email {
				return nil, "", ErrEmailTaken
			}
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Sign(jwtx.NewSessionClaims(user.ID, s.Tokens.Issuer(), s.SessionTTL, now))
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}
	return user, token, nil
}

// LoginResult carries either a full session token or, when the account
// has 2FA enabled, a short-lived pending token to be exchanged through
// the second-factor verification.
type LoginResult struct {
	Token             string
	RequiresTwoFactor bool
	User              *domain.User
}

// Login checks credentials against the username or email, matched
// case-sensitively as entered.
func (s *AuthService) Login(ctx context.Context, login, password string) (LoginResult, error) {
	user, err := s.Store.Users().GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		token, err := s.issuePending(user.ID)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Token: token, RequiresTwoFactor: true, User: user}, nil
	}

	token, err := s.IssueSession(ctx, user.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: user}, nil
}

// IssueSession signs a full session token and records the login time.
func (s *AuthService) IssueSession(ctx context.Context, userID string) (string, error) {
	now := s.now()
	token, err := s.Tokens.Sign(jwtx.NewSessionClaims(userID, s.Tokens.Issuer(), s.SessionTTL, now))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	if err := s.Store.Users().UpdateLastLogin(ctx, userID, now.UTC()); err != nil {
		return "", fmt.Errorf("record login: %w", err)
	}
	return token, nil
}

func (s *AuthService) issuePending(userID string) (string, error) {
	token, err := s.Tokens.Sign(jwtx.NewPendingClaims(userID, s.Tokens.Issuer(), s.PendingTTL, s.now()))
	if err != nil {
		return "", fmt.Errorf("sign pending token: %w", err)
	}
	return token, nil
}

// GetUser loads the account for authenticated profile reads.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
