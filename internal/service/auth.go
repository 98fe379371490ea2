package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/inkwell/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 24 * time.Hour

// dummyHash is a bcrypt hash of an arbitrary string. Login compares
// against it when the email is unknown so both failure paths pay the
// same bcrypt cost.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles registration, login, logout, and session resolution.
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account and logs it in, returning the user
// together with a fresh session. A duplicate email surfaces as
// domain.ErrDuplicateEmail and leaves the store unchanged.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, *domain.Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" || name == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email, name, and password are required", domain.ErrInvalidInput)
	}

	if len(password) < 8 {
		return nil, nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password both yield domain.ErrUnauthorized so callers cannot tell accounts
// apart from the error kind.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn the same bcrypt work as the known-email path so
			// response timing does not reveal whether the account exists.
			VerifyPassword(password, dummyHash)
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, nil, domain.ErrUnauthorized
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout invalidates the session token. A token that is already gone is
// fine; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// UserForToken resolves a session token to its user. Missing, expired, or
// dangling tokens all yield domain.ErrUnauthorized; expired ones are reaped
// on the way out.
func (s *AuthService) UserForToken(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// PurgeExpiredSessions removes every session whose expiry has passed.
// main runs it periodically so abandoned sessions do not pile up.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	if err := s.sessions.DeleteExpired(ctx, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}

// createSession issues a fresh token for the user. Each user holds at
// most one live session, so any earlier sessions are dropped first.
func (s *AuthService) createSession(ctx context.Context, userID int64) (*domain.Session, error) {
	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("delete prior sessions: %w", err)
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// VerifyPassword reports whether plaintext matches the stored credential.
// A malformed or legacy credential is a non-match, never an error.
func VerifyPassword(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
