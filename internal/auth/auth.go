// Package auth verifies session tokens and issues them on login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sadopc/mindease/internal/store"
)

// ErrUnauthenticated is returned for missing, unknown or expired tokens.
var ErrUnauthenticated = errors.New("not signed in")

// Verifier resolves an opaque session token to a user id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type accounts interface {
	CreateUser(ctx context.Context, email, displayName string) (*store.User, error)
	GetUser(ctx context.Context, id string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	CreateSession(ctx context.Context, userID string, ttl time.Duration) (*store.Session, error)
	GetSession(ctx context.Context, token string) (*store.Session, error)
	DeleteSession(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Service is the local identity provider: users are keyed by email and
// sessions are opaque tokens with a fixed lifetime.
type Service struct {
	accounts accounts
	ttl      time.Duration
	now      func() time.Time
	log      *slog.Logger
}

var _ Verifier = (*Service)(nil)

func NewService(accounts accounts, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = store.DefaultSessionTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{accounts: accounts, ttl: ttl, now: time.Now, log: log}
}

// Login signs in the user with email, creating the account on first use,
// and returns a fresh session.
func (s *Service) Login(ctx context.Context, email, displayName string) (*store.Session, *store.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("login: invalid email %q", email)
	}

	user, err := s.accounts.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		if displayName == "" {
			displayName, _, _ = strings.Cut(email, "@")
		}
		user, err = s.accounts.CreateUser(ctx, email, displayName)
		if err == nil {
			s.log.Info("account created", "user", user.ID)
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if n, err := s.accounts.PurgeExpiredSessions(ctx, s.now()); err != nil {
		s.log.Warn("purging sessions failed", "error", err)
	} else if n > 0 {
		s.log.Debug("purged expired sessions", "count", n)
	}

	sess, err := s.accounts.CreateSession(ctx, user.ID, s.ttl)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	s.log.Info("signed in", "user", user.ID)
	return sess, user, nil
}

// Verify returns the user id behind token.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	sess, err := s.accounts.GetSession(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("verify session: %w", err)
	}
	if sess.Expired(s.now()) {
		if err := s.accounts.DeleteSession(ctx, token); err != nil {
			s.log.Warn("deleting expired session failed", "error", err)
		}
		return "", fmt.Errorf("%w: session expired", ErrUnauthenticated)
	}
	return sess.UserID, nil
}

// CurrentUser verifies token and loads the account.
func (s *Service) CurrentUser(ctx context.Context, token string) (*store.User, error) {
	id, err := s.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.accounts.GetUser(ctx, id)
}

// Logout invalidates token. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.accounts.DeleteSession(ctx, token)
}
