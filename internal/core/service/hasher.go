package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hasher digests secrets with unsalted SHA-256, hex encoded.
//
// The digest has to be deterministic so the store can match credentials by
// equality, which rules out salted schemes. The missing salt is a known
// weakness of the scheme this service preserves.
type SHA256Hasher struct{}

func NewSHA256Hasher() SHA256Hasher { return SHA256Hasher{} }

func (SHA256Hasher) Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
