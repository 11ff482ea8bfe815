// Package app runs one fdb action against a store file.
//
// Every action follows the same cycle: acquire the sentinel lock, load the
// store, apply one command, save the store if the command changed it, and
// release the lock. Queries take the lock too, so they never observe a store
// that another invocation is in the middle of rewriting.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasew/fdb/internal/command"
	"github.com/lucasew/fdb/internal/db"
	"github.com/lucasew/fdb/internal/errutil"
	"github.com/lucasew/fdb/internal/eviction/policy"
	"github.com/lucasew/fdb/internal/eviction/policy/maxsize"
	"github.com/lucasew/fdb/internal/item"
	"github.com/lucasew/fdb/internal/lock"
	"github.com/lucasew/fdb/internal/rank"
	"github.com/lucasew/fdb/internal/store"
)

var (
	// ErrConfig is returned for configuration that cannot be used.
	ErrConfig = errors.New("invalid configuration")

	// ErrUsage is returned when an action gets the wrong number of arguments.
	ErrUsage = errors.New("invalid arguments")
)

// Action is one operation a single invocation performs.
type Action int

const (
	Initialize Action = iota
	Add
	Delete
	Query
	Export
	Import
)

func (a Action) String() string {
	switch a {
	case Initialize:
		return "initialize"
	case Add:
		return "add"
	case Delete:
		return "delete"
	case Query:
		return "query"
	case Export:
		return "export"
	case Import:
		return "import"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Config is built once per invocation and passed to Run.
type Config struct {
	DBPath       string
	HistorySize  int
	SortBy       string
	LockInterval time.Duration
	LockTimeout  time.Duration

	// Now samples the current time once per Run. Defaults to time.Now.
	Now func() time.Time
}

// Validate reports configuration errors before any file is touched.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: database path is empty", ErrConfig)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("%w: history size must not be negative, got %d", ErrConfig, c.HistorySize)
	}
	if _, err := rank.Get(c.SortBy); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

func (c Config) policies() []policy.Policy {
	if c.HistorySize == 0 {
		return nil
	}
	return []policy.Policy{&maxsize.Policy{MaxItems: c.HistorySize}}
}

func (c Config) now() int64 {
	if c.Now != nil {
		return c.Now().Unix()
	}
	return time.Now().Unix()
}

func checkArgs(action Action, args []string) error {
	switch action {
	case Initialize:
		if len(args) != 0 {
			return fmt.Errorf("%w: %s takes no arguments", ErrUsage, action)
		}
	case Export:
		if len(args) != 1 {
			return fmt.Errorf("%w: %s takes exactly one output file", ErrUsage, action)
		}
	default:
		if len(args) == 0 {
			return fmt.Errorf("%w: %s needs at least one argument", ErrUsage, action)
		}
	}
	return nil
}

// Run performs action under the store lock. Query results are written to out.
func Run(ctx context.Context, cfg Config, action Action, args []string, out io.Writer) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkArgs(action, args); err != nil {
		return err
	}

	if action == Initialize {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("can't create database directory: %w", err)
		}
	}

	l, err := lock.Acquire(cfg.DBPath, lock.Options{
		Interval: cfg.LockInterval,
		Timeout:  cfg.LockTimeout,
	})
	if err != nil {
		return fmt.Errorf("can't lock database: %w", err)
	}
	defer func() {
		if relErr := l.Release(); relErr != nil {
			if err == nil {
				err = relErr
			} else {
				errutil.LogMsg(relErr, "Failed to release lock", "path", lock.Path(cfg.DBPath))
			}
		}
	}()

	now := cfg.now()
	slog.Debug("Running action", "action", action, "db", cfg.DBPath, "args", len(args))

	if action == Initialize {
		if err := store.Save(nil, cfg.DBPath); err != nil {
			return fmt.Errorf("can't initialize data: %w", err)
		}
		return nil
	}

	items, err := store.Load(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("can't load data: %w", err)
	}

	switch action {
	case Add:
		items = command.Add(items, args, cfg.policies(), now)
	case Delete:
		items = command.Delete(items, args)
	case Query:
		strategy, err := rank.Get(cfg.SortBy)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if err := command.Query(out, items, command.JoinPattern(args), strategy, now); err != nil {
			return fmt.Errorf("can't execute query: %w", err)
		}
		return nil
	case Export:
		if err := exportTo(ctx, args[0], items); err != nil {
			return fmt.Errorf("can't export data: %w", err)
		}
		return nil
	case Import:
		for _, path := range args {
			imported, err := importFrom(ctx, path)
			if err != nil {
				return fmt.Errorf("can't import data: %w", err)
			}
			items = command.Merge(items, imported, cfg.policies(), now)
		}
	default:
		return fmt.Errorf("%w: unknown action %s", ErrUsage, action)
	}

	if err := store.Save(items, cfg.DBPath); err != nil {
		return fmt.Errorf("can't save data: %w", err)
	}
	return nil
}

func exportTo(ctx context.Context, path string, items []item.Item) error {
	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer func() { errutil.LogMsg(database.Close(), "Failed to close export database", "path", path) }()

	return database.ReplaceAll(ctx, items)
}

func importFrom(ctx context.Context, path string) ([]item.Item, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	database, err := db.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer func() { errutil.LogMsg(database.Close(), "Failed to close import database", "path", path) }()

	items, err := database.All(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("Importing items", "path", path, "count", len(items))
	return items, nil
}
