package domain

import "errors"

var (
	// ErrInvalidRequest is returned when a login is attempted with an empty
	// username or password. No store access happens in that case.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidCredentials is returned when the username exists but the
	// presented password does not match the stored digest.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned by store lookups that match no record.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned by Insert when a record with the same
	// username is already present.
	ErrUserExists = errors.New("user already exists")

	// ErrStoreUnavailable means the backing medium could not be opened or
	// created. Fatal to the invocation; never retried silently.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreCorrupt means a persisted record failed to parse. The whole
	// operation fails; skipping a line would drop it on the next rewrite.
	ErrStoreCorrupt = errors.New("store corrupt")

	// ErrWriteConflict means another writer held the store lock for the
	// whole retry window. Callers may retry the operation.
	ErrWriteConflict = errors.New("concurrent write conflict")
)
