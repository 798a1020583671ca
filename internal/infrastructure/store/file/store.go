// Package file implements the record store over a line-oriented flat file:
// one JSON object per line, one line per identity, in insertion order.
//
// Reads load the whole file; mutations are serialized behind an exclusive
// sidecar lock and published atomically by writing a temp file and renaming
// it over the store, so readers never observe a partial write.
package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/webserv42/auth-system/internal/core/domain"
	"github.com/webserv42/auth-system/internal/metrics"
)

const defaultLockTimeout = 2 * time.Second

// Store is the file-backed record store. It holds no open handles between
// operations: every call opens the backing file fresh, matching the
// short-lived-invocation model the service runs under.
type Store struct {
	path string
	lock *storeLock
}

// New returns a store backed by the file at path. The file does not have to
// exist yet; the first insert creates it. lockTimeout bounds how long a
// mutation waits for the store lock before giving up with a write conflict;
// zero or negative selects the default.
func New(path string, lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &Store{path: path, lock: newStoreLock(path, lockTimeout)}
}

func (s *Store) FindByCredentials(ctx context.Context, username, hashedPassword string) (string, error) {
	records, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		if r.Username == username && r.HashedPassword == hashedPassword {
			return r.Token, nil
		}
	}
	return "", domain.ErrUserNotFound
}

func (s *Store) FindByToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Insert(ctx context.Context, username, hashedPassword, token string) error {
	if err := s.lock.acquire(ctx); err != nil {
		return err
	}
	defer s.lock.release()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.Username == username {
			return domain.ErrUserExists
		}
	}

	line, err := json.Marshal(domain.Record{Username: username, HashedPassword: hashedPassword, Token: token})
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("%w: append to %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	return f.Sync()
}

// UpdateToken is a whole-store read-modify-write: load every record, replace
// the matching record's token, write all records to a temp file, and rename
// it over the store. Line order is preserved.
func (s *Store) UpdateToken(ctx context.Context, username, token string) error {
	timer := prometheus.NewTimer(metrics.StoreRewriteDuration)
	defer timer.ObserveDuration()

	if err := s.lock.acquire(ctx); err != nil {
		return err
	}
	defer s.lock.release()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range records {
		if records[i].Username == username {
			records[i].Token = token
			found = true
			break
		}
	}
	if !found {
		return domain.ErrUserNotFound
	}

	return s.rewrite(records)
}

// load reads and parses the whole store. A missing file is an empty store; a
// line that fails to parse fails the operation, since silently skipping it
// would drop the record on the next rewrite.
func (s *Store) load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}

	var records []domain.Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineno := 0
	for sc.Scan() {
		lineno++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var r domain.Record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", domain.ErrStoreCorrupt, s.path, lineno, err)
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	return records, nil
}

// rewrite publishes a new store snapshot atomically: temp file in the same
// directory, fsync, then rename over the old contents.
func (s *Store) rewrite(records []domain.Record) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".records-*")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %v", domain.ErrStoreUnavailable, dir, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			tmp.Close()
			return fmt.Errorf("encode record: %w", err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", domain.ErrStoreUnavailable, tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", domain.ErrStoreUnavailable, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrStoreUnavailable, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", domain.ErrStoreUnavailable, tmp.Name(), err)
	}
	return nil
}
