package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/webserv42/auth-system/internal/core/domain"
	"github.com/webserv42/auth-system/internal/metrics"
)

const (
	lockRetryInterval = 25 * time.Millisecond
	lockStaleAfter    = 10 * time.Second
)

var errLockHeld = errors.New("lock held by another writer")

// storeLock serializes mutations across invocations with a sidecar lock file
// next to the store. The file is created with O_EXCL, so exactly one process
// can hold it; its contents (owner id, pid, timestamp) exist for diagnostics.
//
// A lock older than lockStaleAfter is assumed to belong to a crashed
// invocation and is broken. Readers never take the lock: writers publish via
// rename, so a reader always sees a complete store.
type storeLock struct {
	path    string
	timeout time.Duration
	stale   time.Duration
}

func newStoreLock(storePath string, timeout time.Duration) *storeLock {
	return &storeLock{path: storePath + ".lock", timeout: timeout, stale: lockStaleAfter}
}

// acquire blocks until the lock is held, retrying with constant backoff up to
// the configured window. Exhaustion surfaces domain.ErrWriteConflict, which
// callers may retry.
func (l *storeLock) acquire(ctx context.Context) error {
	owner := uuid.NewString()

	attempt := func() error {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, fs.ErrExist) {
			l.breakIfStale()
			return errLockHeld
		}
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: create lock file: %v", domain.ErrStoreUnavailable, err))
		}
		fmt.Fprintf(f, "%s %d %s\n", owner, os.Getpid(), time.Now().UTC().Format(time.RFC3339Nano))
		return f.Close()
	}

	retries := uint64(l.timeout / lockRetryInterval)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(lockRetryInterval), retries),
		ctx,
	)
	if err := backoff.Retry(attempt, policy); err != nil {
		if errors.Is(err, errLockHeld) || errors.Is(err, context.DeadlineExceeded) {
			metrics.StoreConflictsTotal.Inc()
			return fmt.Errorf("%w: %s", domain.ErrWriteConflict, l.path)
		}
		return err
	}
	return nil
}

func (l *storeLock) release() {
	_ = os.Remove(l.path)
}

// breakIfStale removes a lock file whose mtime is older than the staleness
// bound. The next retry races for the freed lock as usual.
func (l *storeLock) breakIfStale() {
	info, err := os.Stat(l.path)
	if err != nil {
		return
	}
	if time.Since(info.ModTime()) > l.stale {
		_ = os.Remove(l.path)
	}
}
