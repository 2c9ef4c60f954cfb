// Package cache provides a content-addressed cache for rendered export
// artifacts.
//
// Rendering a mind map to SVG goes through Graphviz and is the only
// expensive step in the export path, so the CLI caches artifacts keyed
// by a hash of the document and the render options. The graph engine
// itself never caches anything - visibility and layout are recomputed
// from scratch by design.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a value. ok=false means a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact: a hash of
// the serialized document plus every option that affects the output.
func ArtifactKey(docJSON []byte, format string, opts any) string {
	return hashKey("artifact", Hash(docJSON), format, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
