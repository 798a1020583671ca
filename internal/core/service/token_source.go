package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RandomTokenSource mints tokens from CSPRNG entropy. This is the default:
// the token value carries no information about the identity or the clock, so
// knowing the issuance time gives an attacker nothing.
//
// The output shape (64 lowercase hex characters) matches DerivedTokenSource,
// so validation is agnostic to which source issued a token.
type RandomTokenSource struct{}

func NewRandomTokenSource() RandomTokenSource { return RandomTokenSource{} }

func (RandomTokenSource) Issue(_, _ string, _ time.Time) string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; if it somehow
		// does, the uuid below still provides 122 random bits.
		buf = buf[:0]
	}
	id := uuid.New()
	sum := sha256.Sum256(append(buf, id[:]...))
	return hex.EncodeToString(sum[:])
}

// DerivedTokenSource reproduces the legacy scheme: the token is the digest of
// username, secret, and issuance timestamp. Predictable for anyone who can
// guess the timestamp window; kept only for compatibility with deployments
// that seed tokens this way.
type DerivedTokenSource struct {
	hasher SHA256Hasher
}

func NewDerivedTokenSource() DerivedTokenSource { return DerivedTokenSource{} }

func (s DerivedTokenSource) Issue(username, secret string, now time.Time) string {
	seed := fmt.Sprintf("%s|%s|%s", username, secret, strconv.FormatInt(now.UnixNano(), 10))
	return s.hasher.Digest(seed)
}
