package dataset

import (
	"os"
	"time"
)

// DefaultCacheKey is the cache entry holding the last good manifest.
const DefaultCacheKey = "flags_manifest_object_json"

// Config controls where the manifest is read from.
type Config struct {
	// Source is an http(s) URL or a local file path. Empty disables the
	// source and goes straight to the cache.
	Source string

	// CacheKey names the cache entry for the last good manifest.
	CacheKey string

	// Timeout bounds a single source fetch.
	Timeout time.Duration
}

// DefaultConfig reads flags_manifest.json from the working directory.
func DefaultConfig() Config {
	return Config{
		Source:   "flags_manifest.json",
		CacheKey: DefaultCacheKey,
		Timeout:  10 * time.Second,
	}
}

// ConfigFromEnv applies GEOQUIZ_MANIFEST and GEOQUIZ_FETCH_TIMEOUT on top of
// the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if s := os.Getenv("GEOQUIZ_MANIFEST"); s != "" {
		cfg.Source = s
	}
	if t := os.Getenv("GEOQUIZ_FETCH_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
