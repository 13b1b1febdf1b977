// Package cache provides the layout and artifact cache for gitlanes.
//
// Computing a layout means walking the commit log and running the lane
// engine; for large histories the result is worth keeping. Cache backends
// store opaque bytes under keys derived from the repository HEAD and the
// pipeline options, so a cache entry is invalidated naturally whenever new
// commits arrive or the options change.
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache]
// for the HTTP server, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached value types.
const (
	// TTLLog is how long a serialized commit log stays valid. Keys embed
	// the HEAD hash, so this mostly bounds disk usage.
	TTLLog = 24 * time.Hour

	// TTLLayout is how long a computed layout stays valid.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, DOT) stay valid.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LogKeyOpts are the option fields that distinguish commit-log cache entries.
type LogKeyOpts struct {
	Ref        string
	All        bool
	MaxCommits int
}

// LayoutKeyOpts are the option fields that distinguish layout cache entries.
type LayoutKeyOpts struct {
	Ref        string
	All        bool
	MaxCommits int
}

// ArtifactKeyOpts are the option fields that distinguish rendered artifacts.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// LogKey keys a serialized commit log by the repo HEAD and log options.
	LogKey(head string, opts LogKeyOpts) string

	// LayoutKey keys a computed layout by the log content hash and options.
	LayoutKey(logHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout content hash and
	// render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LogKey generates a key for commit-log caching.
func (k *DefaultKeyer) LogKey(head string, opts LogKeyOpts) string {
	return hashKey("log", head, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(logHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", logHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
