// Package cache provides result caching for routing runs.
//
// Routing is deterministic, so a run is fully identified by a content
// hash over its inputs (ports, bounding box, netlist, parameters). The
// cache stores serialized results keyed by that hash. Backends:
//
//   - file: per-user cache directory, for CLI usage
//   - redis: shared cache for server deployments
//   - null: caching disabled
//
// All backends are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// TTLRoute is how long cached routing results stay valid. Inputs are
// content-hashed, so staleness only matters for reclaiming disk space.
const TTLRoute = 30 * 24 * time.Hour

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
