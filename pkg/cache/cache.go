// Package cache stores rendered artifacts so repeated exports of an
// unchanged tree skip the Graphviz pass.
//
// Keys are content addressed: [ArtifactKey] hashes the output format
// together with the DOT source, so a cached entry never goes stale and
// entries are written without expiry.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the data for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Dir returns the default cache directory: $XDG_CACHE_HOME/treeflow,
// falling back to the user cache dir reported by the OS.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "treeflow"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "treeflow"), nil
}
