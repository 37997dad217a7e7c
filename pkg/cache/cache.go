// Package cache provides pluggable result caching for the rendering
// pipeline: a file-based cache for CLI usage, a redis cache for server
// deployments, and a null cache for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Parsed graphs are cheap to rebuild;
// layouts and rendered artifacts are the expensive part.
const (
	GraphTTL  = 24 * time.Hour
	LayoutTTL = 7 * 24 * time.Hour
	RenderTTL = 7 * 24 * time.Hour
)

// Cache is the storage backend interface. Implementations must treat a
// missing key as (nil, false, nil), never as an error.
type Cache interface {
	// Get retrieves a value. The second return reports whether it existed.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts distinguishes graph cache entries parsed with different
// settings.
type GraphKeyOpts struct {
	Kind string `json:"kind"`
}

// LayoutKeyOpts distinguishes layout cache entries computed with different
// spacing or direction settings.
type LayoutKeyOpts struct {
	Direction string `json:"direction"`
	Config    any    `json:"config"`
}

// RenderKeyOpts distinguishes rendered artifacts by style.
type RenderKeyOpts struct {
	Style string `json:"style"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey keys a parsed graph by the hash of its source markup.
	GraphKey(sourceHash string, opts GraphKeyOpts) string
	// LayoutKey keys a layout by the hash of its input graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// RenderKey keys a rendered artifact by the hash of its layout.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes stage inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

func (k *DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts)
}

func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

func (k *DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey("render", layoutHash, opts)
}
