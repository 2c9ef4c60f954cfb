package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered artifacts as entry files under a root
// directory, sharded by key hash so a long-lived cache never piles
// thousands of files into a single directory.
type FileCache struct {
	dir string
}

// NewFileCache opens an artifact cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// artifactEntry is the on-disk envelope around one rendered artifact.
// Key repeats the full cache key: an entry whose recorded key does not
// match the lookup reads as a miss, never as the wrong artifact.
type artifactEntry struct {
	Key       string    `json:"key"`
	Artifact  []byte    `json:"artifact"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get returns the artifact stored under key. Unreadable, mismatched,
// and expired entries are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry artifactEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Artifact, true, nil
}

// Set stores an artifact under key. A ttl of zero keeps the entry until
// it is deleted.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := artifactEntry{
		Key:      key,
		Artifact: data,
		StoredAt: time.Now(),
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.StoredAt.Add(ttl)
	}

	blob, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

// Delete removes the entry stored under key. Deleting a missing key is
// not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Close is a no-op; entries live on disk with no open handles between
// calls.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a cache key to <dir>/<hh>/<rest>.entry, where hh is
// the first two hex characters of the key hash.
func (c *FileCache) entryPath(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".entry")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
