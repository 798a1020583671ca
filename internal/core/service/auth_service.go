package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/webserv42/auth-system/internal/core/domain"
	"github.com/webserv42/auth-system/internal/core/ports"
	"github.com/webserv42/auth-system/internal/metrics"
)

// AuthService implements login and token validation over an injected store.
type AuthService struct {
	store  ports.RecordStore
	hasher ports.Hasher
	tokens ports.TokenSource
	now    func() time.Time
}

func NewAuthService(store ports.RecordStore, hasher ports.Hasher, tokens ports.TokenSource) *AuthService {
	if hasher == nil {
		hasher = NewSHA256Hasher()
	}
	if tokens == nil {
		tokens = NewRandomTokenSource()
	}
	return &AuthService{store: store, hasher: hasher, tokens: tokens, now: time.Now}
}

// Login authenticates the username/password pair and rotates (or creates)
// the stored token. Exactly one store mutation happens on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_request").Inc()
		return "", domain.ErrInvalidRequest
	}

	digest := s.hasher.Digest(password)

	_, err := s.store.FindByCredentials(ctx, username, digest)
	switch {
	case err == nil:
		token := s.tokens.Issue(username, password, s.now())
		if err := s.store.UpdateToken(ctx, username, token); err != nil {
			metrics.LoginsTotal.WithLabelValues("store_error").Inc()
			return "", fmt.Errorf("rotate token for %q: %w", username, err)
		}
		metrics.LoginsTotal.WithLabelValues("rotated").Inc()
		return token, nil

	case errors.Is(err, domain.ErrUserNotFound):
		token := s.tokens.Issue(username, password, s.now())
		if err := s.store.Insert(ctx, username, digest, token); err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				// The username is taken but the digest did not match:
				// wrong password, not a new identity.
				metrics.LoginsTotal.WithLabelValues("denied").Inc()
				return "", domain.ErrInvalidCredentials
			}
			metrics.LoginsTotal.WithLabelValues("store_error").Inc()
			return "", fmt.Errorf("insert record for %q: %w", username, err)
		}
		metrics.LoginsTotal.WithLabelValues("created").Inc()
		return token, nil

	default:
		metrics.LoginsTotal.WithLabelValues("store_error").Inc()
		return "", fmt.Errorf("lookup credentials for %q: %w", username, err)
	}
}

// Validate reports whether the presented token matches any stored record.
func (s *AuthService) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		metrics.ValidationsTotal.WithLabelValues("denied").Inc()
		return false, nil
	}

	found, err := s.store.FindByToken(ctx, token)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("store_error").Inc()
		return false, fmt.Errorf("lookup token: %w", err)
	}

	if found {
		metrics.ValidationsTotal.WithLabelValues("granted").Inc()
	} else {
		metrics.ValidationsTotal.WithLabelValues("denied").Inc()
	}
	return found, nil
}
