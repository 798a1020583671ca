// Package memory implements the record store in process memory. It exists
// for tests and for embedding the auth service in a host that manages its
// own durability.
package memory

import (
	"context"
	"sync"

	"github.com/webserv42/auth-system/internal/core/domain"
)

// Store keeps records in insertion order behind a mutex, mirroring the file
// store's semantics (including username-uniqueness enforcement at insert).
type Store struct {
	mu      sync.Mutex
	records []domain.Record
}

func New() *Store { return &Store{} }

func (s *Store) FindByCredentials(_ context.Context, username, hashedPassword string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Username == username && r.HashedPassword == hashedPassword {
			return r.Token, nil
		}
	}
	return "", domain.ErrUserNotFound
}

func (s *Store) Insert(_ context.Context, username, hashedPassword, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Username == username {
			return domain.ErrUserExists
		}
	}
	s.records = append(s.records, domain.Record{Username: username, HashedPassword: hashedPassword, Token: token})
	return nil
}

func (s *Store) UpdateToken(_ context.Context, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].Username == username {
			s.records[i].Token = token
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (s *Store) FindByToken(_ context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Token == token {
			return true, nil
		}
	}
	return false, nil
}

// Len reports the number of stored records. Test helper.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
