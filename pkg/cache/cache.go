// Package cache provides pluggable caching for extraction results, rendered
// artifacts and backend HTTP responses.
//
// # Implementations
//
//   - [FileCache]: one JSON file per key under a directory (CLI default)
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: disables caching
//
// # Keys
//
// Keys are produced by a [Keyer] so that the CLI and the server agree on
// the layout. [NewScopedKeyer] prefixes every key, which lets several
// deployments share one Redis instance.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Default time-to-live values.
const (
	// TTLExtraction is how long an extracted graph stays valid.
	TTLExtraction = 24 * time.Hour

	// TTLHTTP is how long a raw backend HTTP response stays valid.
	TTLHTTP = 6 * time.Hour

	// TTLArtifact is how long a rendered artifact (SVG) stays valid.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases underlying resources.
	Close() error
}

// ExtractionKeyOpts are the inputs, besides the text, that change what an
// extraction returns.
type ExtractionKeyOpts struct {
	Research bool     `json:"research"`
	Backends []string `json:"backends,omitempty"`
}

// ArtifactKeyOpts are the rendering inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Direction string `json:"direction,omitempty"`
	Relations bool   `json:"relations,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a raw backend response.
	HTTPKey(namespace, key string) string

	// ExtractionKey returns the key for the graph extracted from text.
	ExtractionKey(text string, opts ExtractionKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from a hierarchy
	// with the given content hash.
	ArtifactKey(hierarchyHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// ExtractionKey hashes the trimmed text together with the options.
func (DefaultKeyer) ExtractionKey(text string, opts ExtractionKeyOpts) string {
	return hashKey("extract", strings.TrimSpace(text), opts)
}

// ArtifactKey hashes the hierarchy hash together with the options.
func (DefaultKeyer) ArtifactKey(hierarchyHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", hierarchyHash, opts)
}
