package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	filestore "github.com/webserv42/auth-system/internal/infrastructure/store/file"
)

// These tests run the service against the production file store, so the
// whole login path (digest, issue, lock, rewrite, rename) is exercised
// together.

func TestLoginOverFileStore_FullScenario(t *testing.T) {
	store := filestore.New(filepath.Join(t.TempDir(), "records.txt"), time.Second)
	svc := NewAuthService(store, nil, nil)
	ctx := context.Background()

	first, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if granted, _ := svc.Validate(ctx, first); !granted {
		t.Fatal("first token denied")
	}

	second, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second == first {
		t.Fatal("re-login did not rotate the token")
	}
	if granted, _ := svc.Validate(ctx, first); granted {
		t.Fatal("rotated-out token still granted")
	}
	if granted, _ := svc.Validate(ctx, second); !granted {
		t.Fatal("current token denied")
	}
}

func TestConcurrentLogins_DistinctUsernamesBothPersist(t *testing.T) {
	store := filestore.New(filepath.Join(t.TempDir(), "records.txt"), 5*time.Second)
	svc := NewAuthService(store, nil, nil)
	ctx := context.Background()

	const users = 6
	tokens := make([]string, users)
	errs := make([]error, users)

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = svc.Login(ctx, username(i), "secret1")
		}(i)
	}
	wg.Wait()

	for i := 0; i < users; i++ {
		if errs[i] != nil {
			t.Fatalf("login %d failed: %v", i, errs[i])
		}
		if granted, err := svc.Validate(ctx, tokens[i]); err != nil || !granted {
			t.Fatalf("token for %s lost: (%v, %v)", username(i), granted, err)
		}
	}
}

func username(i int) string {
	return "user-" + string(rune('a'+i))
}
