package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Store.Backend != "file" {
		t.Fatalf("Store.Backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Store.LockTimeout != 2*time.Second {
		t.Fatalf("Store.LockTimeout = %v, want 2s", cfg.Store.LockTimeout)
	}
	if cfg.Cookie.Name != "token" || cfg.Cookie.MaxAge != 86400 || cfg.Cookie.Path != "/" {
		t.Fatalf("unexpected cookie defaults: %+v", cfg.Cookie)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")
	t.Setenv("STORE_PATH", "/var/lib/auth/records.txt")
	t.Setenv("STORE_LOCK_TIMEOUT", "500ms")
	t.Setenv("MONGO_DB", "sessions")
	t.Setenv("COOKIE_MAX_AGE", "3600")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Store.Backend != "mongo" {
		t.Fatalf("Store.Backend = %q, want mongo", cfg.Store.Backend)
	}
	if cfg.Store.Path != "/var/lib/auth/records.txt" {
		t.Fatalf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Store.LockTimeout != 500*time.Millisecond {
		t.Fatalf("Store.LockTimeout = %v, want 500ms", cfg.Store.LockTimeout)
	}
	if cfg.Store.Mongo.Database != "sessions" {
		t.Fatalf("Mongo.Database = %q, want sessions", cfg.Store.Mongo.Database)
	}
	if cfg.Cookie.MaxAge != 3600 {
		t.Fatalf("Cookie.MaxAge = %d, want 3600", cfg.Cookie.MaxAge)
	}
}
