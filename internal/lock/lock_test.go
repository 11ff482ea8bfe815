package lock

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var fast = Options{Interval: time.Millisecond}

func TestAcquireRelease(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	l, err := Acquire(db, fast)
	require.NoError(t, err)

	info, err := os.Stat(db + ".lock")
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, l.Release())
	assert.NoFileExists(t, db+".lock")

	t.Run("Release Twice", func(t *testing.T) {
		assert.NoError(t, l.Release())
	})

	t.Run("Nil Lock", func(t *testing.T) {
		var nl *Lock
		assert.NoError(t, nl.Release())
	})
}

func TestTimeout(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	held, err := Acquire(db, fast)
	require.NoError(t, err)
	defer func() { _ = held.Release() }()

	start := time.Now()
	_, err = Acquire(db, Options{Interval: time.Millisecond, Timeout: 20 * time.Millisecond})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	assert.FileExists(t, db+".lock", "a timed out waiter must not touch the holder's sentinel")
}

func TestWaitsForRelease(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	held, err := Acquire(db, fast)
	require.NoError(t, err)

	var released atomic.Bool
	go func() {
		time.Sleep(30 * time.Millisecond)
		released.Store(true)
		_ = held.Release()
	}()

	l, err := Acquire(db, fast)
	require.NoError(t, err)
	assert.True(t, released.Load(), "acquired before the holder released")
	require.NoError(t, l.Release())
}

func TestStaleSentinelBlocks(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")
	require.NoError(t, os.WriteFile(db+".lock", nil, 0o644))

	_, err := Acquire(db, Options{Interval: time.Millisecond, Timeout: 10 * time.Millisecond})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCreateFailure(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing-dir", "db")

	_, err := Acquire(db, fast)
	assert.ErrorIs(t, err, ErrLock)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestMutualExclusion(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	var holders, maxHolders, total atomic.Int32
	g := new(errgroup.Group)
	for range 8 {
		g.Go(func() error {
			for range 5 {
				l, err := Acquire(db, fast)
				if err != nil {
					return err
				}

				n := holders.Add(1)
				for {
					m := maxHolders.Load()
					if n <= m || maxHolders.CompareAndSwap(m, n) {
						break
					}
				}
				total.Add(1)
				time.Sleep(time.Millisecond)
				holders.Add(-1)

				if err := l.Release(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), maxHolders.Load())
	assert.Equal(t, int32(40), total.Load())
	assert.NoFileExists(t, db+".lock")
}
