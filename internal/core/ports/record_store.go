package ports

import "context"

// RecordStore is the persistence boundary for identity records. Implementations
// are expected to be safe for use from concurrent invocations: mutations must
// be serialized against each other, and readers must never observe a
// partially written store.
type RecordStore interface {
	// FindByCredentials scans for the record whose username and password
	// digest both match and returns its current token. Returns
	// domain.ErrUserNotFound when no record matches.
	FindByCredentials(ctx context.Context, username, hashedPassword string) (string, error)

	// Insert appends a new record. Returns domain.ErrUserExists when a
	// record with the same username is already present.
	Insert(ctx context.Context, username, hashedPassword, token string) error

	// UpdateToken replaces the token of the record matching username,
	// leaving every other field and the record order intact. Returns
	// domain.ErrUserNotFound when the username is absent.
	UpdateToken(ctx context.Context, username, token string) error

	// FindByToken reports whether any record's token equals the presented
	// value byte for byte. An empty token never matches.
	FindByToken(ctx context.Context, token string) (bool, error)
}
