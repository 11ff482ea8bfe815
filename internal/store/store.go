// Package store persists the item sequence to a single file.
//
// Saves never modify the target in place: the snapshot is written to a
// uniquely named sibling, flushed, and renamed over the target, so readers
// see either the previous file or the new one.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/lucasew/fdb/internal/errutil"
	"github.com/lucasew/fdb/internal/item"
)

// Version is the newest snapshot layout this package understands.
const Version = 1

var (
	// ErrNotFound is returned when the store file does not exist.
	ErrNotFound = errors.New("database not found")

	// ErrDataCorrupt is returned when the store file cannot be decoded.
	ErrDataCorrupt = errors.New("database is corrupt")
)

// zstd frame magic number, little endian.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Snapshot is the on-disk envelope around the items.
type Snapshot struct {
	Version int         `yaml:"version"`
	Items   []item.Item `yaml:"items"`
}

// Load reads every item stored at path.
func Load(path string) ([]item.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = f.Close() }()

	codec, _ := codecFor(path)

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(len(zstdMagic)); err == nil && string(magic) == string(zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create decompressor: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var s Snapshot
	if err := codec.Decode(r, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataCorrupt, path, err)
	}
	if s.Version < 1 || s.Version > Version {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", ErrDataCorrupt, path, s.Version)
	}

	slog.Debug("Loaded database", "path", path, "count", len(s.Items))
	return s.Items, nil
}

// Save atomically replaces the file at path with items.
//
// The process ensures a crash never leaves a partial file behind:
// 1. Encodes the items into a temporary sibling of path.
// 2. Flushes and syncs the temporary file.
// 3. Renames the temporary file over path.
//
// Saving an empty sequence initializes a new store.
func Save(items []item.Item, path string) error {
	codec, compressed := codecFor(path)

	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	tmpFile, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary database file: %w", err)
	}

	renamed := false
	closed := false
	defer func() {
		if !closed {
			_ = tmpFile.Close()
		}
		if !renamed {
			errutil.LogMsg(os.Remove(tmpPath), "Failed to remove temporary database file", "path", tmpPath)
		}
	}()

	if items == nil {
		items = []item.Item{}
	}
	if err := write(tmpFile, codec, compressed, &Snapshot{Version: Version, Items: items}); err != nil {
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to flush temporary database file: %w", err)
	}
	closed = true
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary database file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary database file: %w", err)
	}
	renamed = true

	slog.Debug("Saved database", "path", path, "count", len(items), "compressed", compressed)
	return nil
}

func write(w io.Writer, codec Codec, compressed bool, s *Snapshot) error {
	bw := bufio.NewWriter(w)

	var out io.Writer = bw
	var zw *zstd.Encoder
	if compressed {
		var err error
		zw, err = zstd.NewWriter(bw)
		if err != nil {
			return fmt.Errorf("failed to create compressor: %w", err)
		}
		out = zw
	}

	if err := codec.Encode(out, s); err != nil {
		if zw != nil {
			_ = zw.Close()
		}
		return fmt.Errorf("failed to serialize data: %w", err)
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to finish compressed stream: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush temporary database file: %w", err)
	}
	return nil
}
