package config

import (
	"time"
)

// CacheConfig defines settings for the Redis response cache applied to the
// public browse endpoints.  Only GET responses are cached; TTL defines the
// lifetime of cache entries and MaxBodyBytes caps the size of responses
// worth storing.  Entries are keyed by route and query string under Prefix.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from the environment.  The default
// TTL is short: seat maps go stale the moment a claim commits, and clients
// additionally learn of claims over the notifier socket.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 10*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
