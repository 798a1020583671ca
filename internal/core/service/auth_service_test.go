package service

import (
	"context"
	"errors"
	"testing"

	"github.com/webserv42/auth-system/internal/core/domain"
	"github.com/webserv42/auth-system/internal/infrastructure/store/memory"
)

// countingStore wraps a store and counts calls, so tests can assert that a
// path never touched persistence.
type countingStore struct {
	inner *memory.Store
	calls int
}

func newCountingStore() *countingStore {
	return &countingStore{inner: memory.New()}
}

func (s *countingStore) FindByCredentials(ctx context.Context, u, h string) (string, error) {
	s.calls++
	return s.inner.FindByCredentials(ctx, u, h)
}

func (s *countingStore) Insert(ctx context.Context, u, h, tok string) error {
	s.calls++
	return s.inner.Insert(ctx, u, h, tok)
}

func (s *countingStore) UpdateToken(ctx context.Context, u, tok string) error {
	s.calls++
	return s.inner.UpdateToken(ctx, u, tok)
}

func (s *countingStore) FindByToken(ctx context.Context, tok string) (bool, error) {
	s.calls++
	return s.inner.FindByToken(ctx, tok)
}

// failingStore returns a fixed error from every operation.
type failingStore struct{ err error }

func (s *failingStore) FindByCredentials(context.Context, string, string) (string, error) {
	return "", s.err
}
func (s *failingStore) Insert(context.Context, string, string, string) error { return s.err }
func (s *failingStore) UpdateToken(context.Context, string, string) error    { return s.err }
func (s *failingStore) FindByToken(context.Context, string) (bool, error)    { return false, s.err }

func TestLogin_NewUserCreatesOneRecord(t *testing.T) {
	store := memory.New()
	svc := NewAuthService(store, nil, nil)

	token, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("token length = %d, want 64", len(token))
	}
	if store.Len() != 1 {
		t.Fatalf("record count = %d, want 1", store.Len())
	}

	digest := NewSHA256Hasher().Digest("secret1")
	stored, err := store.FindByCredentials(context.Background(), "alice", digest)
	if err != nil {
		t.Fatalf("FindByCredentials after login: %v", err)
	}
	if stored != token {
		t.Fatalf("stored token %q != returned token %q", stored, token)
	}
}

func TestLogin_SecondLoginRotatesToken(t *testing.T) {
	store := memory.New()
	svc := NewAuthService(store, nil, nil)
	ctx := context.Background()

	first, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if first == second {
		t.Fatal("re-login returned the same token")
	}
	if store.Len() != 1 {
		t.Fatalf("record count after re-login = %d, want 1", store.Len())
	}

	if granted, _ := svc.Validate(ctx, first); granted {
		t.Fatal("old token still validates after rotation")
	}
	if granted, _ := svc.Validate(ctx, second); !granted {
		t.Fatal("fresh token does not validate")
	}
}

func TestLogin_EmptyCredentialsTouchNothing(t *testing.T) {
	store := newCountingStore()
	svc := NewAuthService(store, nil, nil)
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"", "secret1"},
		{"alice", ""},
		{"", ""},
	} {
		if _, err := svc.Login(ctx, tc.username, tc.password); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("Login(%q, %q) = %v, want ErrInvalidRequest", tc.username, tc.password, err)
		}
	}
	if store.calls != 0 {
		t.Fatalf("store touched %d times on invalid requests, want 0", store.calls)
	}
}

func TestLogin_WrongPasswordForExistingUser(t *testing.T) {
	store := memory.New()
	svc := NewAuthService(store, nil, nil)
	ctx := context.Background()

	good, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("seed login: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong-password login = %v, want ErrInvalidCredentials", err)
	}
	if store.Len() != 1 {
		t.Fatalf("record count = %d, want 1", store.Len())
	}
	if granted, _ := svc.Validate(ctx, good); !granted {
		t.Fatal("existing token was disturbed by a failed login")
	}
}

func TestValidate_EmptyTokenSkipsStore(t *testing.T) {
	store := newCountingStore()
	svc := NewAuthService(store, nil, nil)

	granted, err := svc.Validate(context.Background(), "")
	if err != nil {
		t.Fatalf("Validate(\"\") returned error: %v", err)
	}
	if granted {
		t.Fatal("empty token was granted")
	}
	if store.calls != 0 {
		t.Fatalf("store touched %d times for empty token, want 0", store.calls)
	}
}

func TestValidate_UnknownTokenDenied(t *testing.T) {
	store := memory.New()
	svc := NewAuthService(store, nil, nil)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("seed login: %v", err)
	}
	if granted, err := svc.Validate(ctx, "not-a-token"); err != nil || granted {
		t.Fatalf("Validate(unknown) = (%v, %v), want (false, nil)", granted, err)
	}
}

func TestLogin_StoreErrorSurfaces(t *testing.T) {
	svc := NewAuthService(&failingStore{err: domain.ErrStoreUnavailable}, nil, nil)

	if _, err := svc.Login(context.Background(), "alice", "secret1"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Login with broken store = %v, want ErrStoreUnavailable", err)
	}
	if _, err := svc.Validate(context.Background(), "some-token"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Validate with broken store = %v, want ErrStoreUnavailable", err)
	}
}
