package ports

import "context"

// AuthService is the entry point the glue layer calls into.
type AuthService interface {
	// Login authenticates the pair, issues a fresh token, and persists it.
	// Exactly one store mutation happens on success: an update for a known
	// identity, an insert for a new one.
	Login(ctx context.Context, username, password string) (string, error)

	// Validate reports whether the presented token belongs to any identity.
	// An empty token is denied without touching the store.
	Validate(ctx context.Context, token string) (bool, error)
}
