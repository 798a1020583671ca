package ports

import "time"

// Hasher turns a plaintext secret into its storable one-way digest.
// Deterministic: equal inputs always yield equal digests.
type Hasher interface {
	Digest(secret string) string
}

// TokenSource mints opaque bearer tokens. Two issuances must produce
// different tokens with overwhelming probability, even for the same identity.
type TokenSource interface {
	Issue(username, secret string, now time.Time) string
}
