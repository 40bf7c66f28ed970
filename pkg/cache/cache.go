// Package cache stores analyzer results and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [NullCache]: never stores anything (--no-cache)
//
// All backends satisfy [Cache]. Keys are built by a [Keyer] so that the
// same inputs always map to the same entry; [NewScopedKeyer] adds a
// namespace prefix when several deployments share one Redis database.
//
// Values are opaque bytes. A zero TTL means the entry never expires.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	// TTLAnalysis bounds how long a script analysis is reused. Model output
	// drifts over time, so analyses expire sooner than renders.
	TTLAnalysis = 7 * 24 * time.Hour

	// TTLArtifact bounds how long an encoded render is kept.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (hit == false) and not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// AnalysisKey identifies the analysis of script by one provider/model pair.
	AnalysisKey(provider, model, script string) string

	// ArtifactKey identifies one encoded render of a configuration.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`

	// Variant identifies renderer settings beyond the configuration, such
	// as the emoji font or auto-fit tuning.
	Variant string `json:"variant,omitempty"`
}

// DefaultKeyer builds unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AnalysisKey implements Keyer.
func (DefaultKeyer) AnalysisKey(provider, model, script string) string {
	return hashKey("analysis", provider, model, Hash([]byte(script)))
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}
