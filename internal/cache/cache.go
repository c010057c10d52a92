// Package cache persists the transformations approved for a file's
// content so a later run over unchanged content can skip analysis
// entirely. An msgpack-serialized payload keyed by content hash, stored
// under an XDG_CACHE_HOME-aware directory, written atomically via a
// temp file and rename.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"movefix/internal/analysis"
	"movefix/internal/source"
)

// schemaVersion guards against decoding a Payload written by an
// incompatible build; bump it whenever Payload's shape changes.
const schemaVersion uint16 = 1

// appName names the subdirectory movefix's cache lives under, the way
// OpenDiskCache takes an app name rather than hardcoding one.
const appName = "movefix"

// Digest is a file content hash, matching source.File.Hash's shape.
type Digest = [32]byte

// Cache stores approved Transformation sets keyed by the content hash
// of the file they were computed from. Thread-safe for concurrent
// access, matching DiskCache's mu sync.RWMutex.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is the on-disk record for one cached file: the transformation
// set plus enough of each Span to rebuild it against a fresh FileID,
// since source.FileID is only stable within a single run's FileSet.
type Payload struct {
	Schema uint16
	Header string
	Edits  []EditRecord
}

// EditRecord is analysis.Transformation without its FileID, since a
// later run assigns file IDs independently of the run that populated
// the cache.
type EditRecord struct {
	Kind        uint8
	RangeStart  uint32
	RangeEnd    uint32
	AnchorStart uint32
	AnchorEnd   uint32
}

// Open initializes a cache rooted at dir. When dir is "" it resolves
// the platform default the way OpenDiskCache does: XDG_CACHE_HOME, or
// ~/.cache, joined with appName.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, appName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "edits", hexKey+".mp")
}

// Put serializes the transformations approved for file (identified by
// its content digest) along with the header include that accompanied
// them.
func (c *Cache) Put(key Digest, header string, edits []analysis.Transformation) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := toPayload(header, edits)
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get looks up the transformations cached for key and, on a hit,
// rebuilds them against file so their Spans carry the caller's FileID.
func (c *Cache) Get(key Digest, file source.FileID) (header string, edits []analysis.Transformation, ok bool, err error) {
	if c == nil {
		return "", nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, false, nil
		}
		return "", nil, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var payload Payload
	dec := msgpack.NewDecoder(f)
	if decErr := dec.Decode(&payload); decErr != nil {
		return "", nil, false, decErr
	}
	if payload.Schema != schemaVersion {
		return "", nil, false, nil
	}
	return payload.Header, fromPayload(payload, file), true, nil
}

// DropAll invalidates the cache, useful after a schema bump. It renames
// the cache directory aside and then removes the renamed copy before
// returning, so a concurrent reader never observes a half-deleted
// directory.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// DigestOf hashes content the same way source.FileSet hashes a loaded
// file, so a cache key always matches the File.Hash of the content it
// was computed from.
func DigestOf(content []byte) Digest {
	return sha256.Sum256(content)
}

func toPayload(header string, edits []analysis.Transformation) Payload {
	payload := Payload{Schema: schemaVersion, Header: header}
	payload.Edits = make([]EditRecord, len(edits))
	for i, e := range edits {
		payload.Edits[i] = EditRecord{
			Kind:        uint8(e.Kind),
			RangeStart:  e.Range.Start,
			RangeEnd:    e.Range.End,
			AnchorStart: e.Anchor.Start,
			AnchorEnd:   e.Anchor.End,
		}
	}
	return payload
}

func fromPayload(payload Payload, file source.FileID) []analysis.Transformation {
	edits := make([]analysis.Transformation, len(payload.Edits))
	for i, e := range payload.Edits {
		edits[i] = analysis.Transformation{
			Kind:   analysis.Kind(e.Kind),
			Range:  source.Span{File: file, Start: e.RangeStart, End: e.RangeEnd},
			Anchor: source.Span{File: file, Start: e.AnchorStart, End: e.AnchorEnd},
		}
	}
	return edits
}
