// Package cache provides the ephemeral key/value tier used for list-query
// results. The tier is non-authoritative: entries may be dropped at any time
// and callers must treat every error as a cache miss.
package cache

import (
	"errors"
	"time"
)

// ErrUnavailable is returned by a Store whose backing system is unreachable.
// Callers degrade to an always-miss cache; the error is never surfaced to
// API clients.
var ErrUnavailable = errors.New("cache unavailable")

// Store is a key/value store with per-entry expiry.
type Store interface {
	// Get returns the stored value for key, or ok=false when the key is
	// absent or expired.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key for ttl.
	Set(key string, value []byte, ttl time.Duration) error
}

// Unavailable is a Store stub whose every operation fails with
// ErrUnavailable. It exists to exercise the catalog's degradation path.
type Unavailable struct{}

func (Unavailable) Get(string) ([]byte, bool, error) { return nil, false, ErrUnavailable }

func (Unavailable) Set(string, []byte, time.Duration) error { return ErrUnavailable }
