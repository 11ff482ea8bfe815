package store

import (
	"encoding/gob"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Codec serializes a store snapshot.
type Codec interface {
	Encode(w io.Writer, s *Snapshot) error
	Decode(r io.Reader, s *Snapshot) error
}

const compressedExt = ".zst"

var (
	codecsMu     sync.RWMutex
	codecs       = map[string]Codec{".yaml": yamlCodec{}, ".yml": yamlCodec{}}
	defaultCodec Codec = gobCodec{}
)

// Register associates a codec with a file extension such as ".yaml".
func Register(ext string, c Codec) {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs[strings.ToLower(ext)] = c
}

// codecFor picks the codec from the extension of path, ignoring a trailing
// ".zst". The second result reports whether the file should be compressed.
func codecFor(path string) (Codec, bool) {
	compressed := strings.EqualFold(filepath.Ext(path), compressedExt)
	if compressed {
		path = path[:len(path)-len(compressedExt)]
	}

	codecsMu.RLock()
	defer codecsMu.RUnlock()
	if c, ok := codecs[strings.ToLower(filepath.Ext(path))]; ok {
		return c, compressed
	}
	return defaultCodec, compressed
}

type gobCodec struct{}

func (gobCodec) Encode(w io.Writer, s *Snapshot) error {
	return gob.NewEncoder(w).Encode(s)
}

func (gobCodec) Decode(r io.Reader, s *Snapshot) error {
	return gob.NewDecoder(r).Decode(s)
}

type yamlCodec struct{}

func (yamlCodec) Encode(w io.Writer, s *Snapshot) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func (yamlCodec) Decode(r io.Reader, s *Snapshot) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(s)
}
