package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Cache persists the last good manifest under a single key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Origin identifies where a loaded pool came from.
type Origin string

const (
	OriginSource Origin = "source"
	OriginCache  Origin = "cache"
	OriginImport Origin = "import"
	OriginNone   Origin = "none"
)

// LoadResult is the outcome of Loader.Load.
type LoadResult struct {
	Items  []Item
	Origin Origin

	// MissingFlags is the number of items with no flag path.
	MissingFlags int

	// Err is set when the source could not be used. With OriginCache it is
	// the source failure that caused the fallback; with OriginNone it wraps
	// ErrDataUnavailable.
	Err error

	// Warnings are non-fatal cache failures, already prefixed with
	// "warning: ". Callers decide where to show them.
	Warnings []string
}

// Loader reads the manifest from its source, falling back to the cache.
type Loader struct {
	cfg    Config
	cache  Cache
	client *http.Client
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// NewLoader creates a Loader. cache may be nil.
func NewLoader(cfg Config, cache Cache, opts ...Option) *Loader {
	if cfg.CacheKey == "" {
		cfg.CacheKey = DefaultCacheKey
	}
	l := &Loader{
		cfg:    cfg,
		cache:  cache,
		client: http.DefaultClient,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Source returns the configured manifest source.
func (l *Loader) Source() string {
	return l.cfg.Source
}

// Load returns the quiz pool. It never fails outright: when neither the
// source nor the cache yields a manifest the result is empty with
// OriginNone.
func (l *Loader) Load(ctx context.Context) LoadResult {
	var (
		srcErr   error
		warnings []string
	)
	if l.cfg.Source != "" {
		raw, err := l.Fetch(ctx)
		if err == nil {
			err = Validate(raw)
		}
		if err == nil {
			if err := l.store(ctx, raw); err != nil {
				warnings = append(warnings, "warning: "+err.Error())
			}
			res := newResult(Parse(raw), OriginSource, nil)
			res.Warnings = warnings
			return res
		}
		srcErr = err
	}

	raw, ok, err := l.cached(ctx)
	if err != nil {
		warnings = append(warnings, "warning: "+err.Error())
	}
	if ok {
		res := newResult(Parse(raw), OriginCache, srcErr)
		res.Warnings = warnings
		return res
	}

	err = ErrDataUnavailable
	if srcErr != nil {
		err = fmt.Errorf("%w: %w", ErrDataUnavailable, srcErr)
	}
	return LoadResult{Origin: OriginNone, Err: err, Warnings: warnings}
}

// Import validates a user-supplied manifest, caches it and returns its
// items. Nothing is cached when raw is invalid.
func (l *Loader) Import(ctx context.Context, raw []byte) ([]Item, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	if l.cache != nil {
		if err := l.cache.Put(ctx, l.cfg.CacheKey, string(raw)); err != nil {
			return nil, fmt.Errorf("cache manifest: %w", err)
		}
	}
	return Parse(raw), nil
}

// ClearCache removes the cached manifest.
func (l *Loader) ClearCache(ctx context.Context) error {
	if l.cache == nil {
		return nil
	}
	if err := l.cache.Delete(ctx, l.cfg.CacheKey); err != nil {
		return fmt.Errorf("clear cached manifest: %w", err)
	}
	return nil
}

// Fetch reads the raw manifest from the configured source.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if l.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.Timeout)
		defer cancel()
	}

	var (
		raw []byte
		err error
	)
	if isURL(l.cfg.Source) {
		raw, err = l.download(ctx, l.cfg.Source)
	} else {
		raw, err = os.ReadFile(l.cfg.Source)
	}
	if err != nil {
		return nil, &FetchError{Source: l.cfg.Source, Err: err}
	}
	return raw, nil
}

func (l *Loader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// store caches raw. A cache failure only costs the offline fallback.
func (l *Loader) store(ctx context.Context, raw []byte) error {
	if l.cache == nil {
		return nil
	}
	if err := l.cache.Put(ctx, l.cfg.CacheKey, string(raw)); err != nil {
		return fmt.Errorf("failed to cache manifest: %w", err)
	}
	return nil
}

// cached returns the cached manifest if it is present and well-formed. The
// error reports a failed read; a missing or malformed entry is not an error.
func (l *Loader) cached(ctx context.Context) ([]byte, bool, error) {
	if l.cache == nil {
		return nil, false, nil
	}
	v, ok, err := l.cache.Get(ctx, l.cfg.CacheKey)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached manifest: %w", err)
	}
	if !ok || Validate([]byte(v)) != nil {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func newResult(items []Item, origin Origin, err error) LoadResult {
	return LoadResult{
		Items:        items,
		Origin:       origin,
		MissingFlags: MissingFlags(items),
		Err:          err,
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
