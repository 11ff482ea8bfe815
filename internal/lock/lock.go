// Package lock serializes store access across processes with a sentinel file.
//
// The sentinel lives next to the database as "<db>.lock". Its existence means
// the lock is held; it carries no content. Acquisition relies solely on an
// exclusive create, so two processes can never both succeed.
//
// A holder that dies without releasing leaves the sentinel behind and every
// later Acquire without a Timeout waits forever. Stale sentinels are never
// broken automatically.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// DefaultInterval is how long Acquire sleeps between attempts.
const DefaultInterval = 30 * time.Millisecond

const suffix = ".lock"

var (
	// ErrLock is returned when the sentinel cannot be created for a reason
	// other than it already existing.
	ErrLock = errors.New("can't create lock file")

	// ErrTimeout is returned when Options.Timeout elapses while waiting.
	ErrTimeout = errors.New("timed out waiting for lock")
)

// Options tunes lock acquisition.
type Options struct {
	// Interval between attempts. Defaults to DefaultInterval.
	Interval time.Duration
	// Timeout bounds the total wait. Zero waits forever.
	Timeout time.Duration
}

// Lock is a held sentinel. Release it exactly once, usually with defer.
type Lock struct {
	path     string
	released bool
}

// Path returns the sentinel path guarding the database at dbPath.
func Path(dbPath string) string {
	return dbPath + suffix
}

// Acquire blocks until it exclusively creates the sentinel for dbPath.
func Acquire(dbPath string, opts Options) (*Lock, error) {
	path := Path(dbPath)

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
	}

	start := time.Now()
	waiting := false
	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			if err := f.Close(); err != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("%w: %w", ErrLock, err)
			}
			if waiting {
				slog.Debug("Acquired lock", "path", path, "waited", time.Since(start))
			}
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %w", ErrLock, err)
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s held for more than %s", ErrTimeout, path, opts.Timeout)
		}

		if !waiting {
			slog.Debug("Lock is held, waiting", "path", path, "interval", interval)
			waiting = true
		}
		time.Sleep(interval)
	}
}

// Release removes the sentinel. Calling it again is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.released {
		return nil
	}
	l.released = true

	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}
