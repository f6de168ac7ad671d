// Package cache stores pipeline results keyed by content hash.
//
// Results of layout and evaluation depend only on the design and rule set,
// so a repeated check of unchanged inputs can be served from the cache. The
// CLI uses a [FileCache] under the user cache directory; the server can use a
// shared [RedisCache]. [NullCache] disables caching.
//
// Keys are produced by a [Keyer] so that callers never build key strings by
// hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any held resources.
	Close() error
}

// Time-to-live for cached results.
const (
	TTLLayout     = 24 * time.Hour
	TTLEvaluation = 24 * time.Hour
)

// Keyer produces cache keys from input hashes.
type Keyer interface {
	// LayoutKey is the key for placements after gap application.
	LayoutKey(inputHash string) string

	// EvaluationKey is the key for the violations of one design and rule set.
	EvaluationKey(inputHash string, opts EvaluationKeyOpts) string
}

// EvaluationKeyOpts are the options that change an evaluation result.
type EvaluationKeyOpts struct {
	// Layout is true when gaps were applied before evaluating.
	Layout bool `json:"layout"`
}

// DefaultKeyer builds keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string) string {
	return hashKey("layout", inputHash)
}

// EvaluationKey implements Keyer.
func (DefaultKeyer) EvaluationKey(inputHash string, opts EvaluationKeyOpts) string {
	return hashKey("eval", inputHash, opts)
}
