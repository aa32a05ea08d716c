package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is an in-memory Cache.
type memCache struct {
	data   map[string]string
	putErr error
	getErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Put(_ context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

const franceManifest = `{"France": {"capital": "Paris", "normal_flag": "/flags/fr.png"}}`

func TestLoad_FromHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(franceManifest))
	}))
	defer srv.Close()

	cache := newMemCache()
	l := NewLoader(Config{Source: srv.URL + "/flags_manifest.json"}, cache)

	res := l.Load(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, OriginSource, res.Origin)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "France", res.Items[0].Country)
	assert.Equal(t, franceManifest, cache.data[DefaultCacheKey], "successful fetch should be cached")
}

func TestLoad_FromFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags_manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Peru": {"capital": "Lima"}, "Chile": {}}`), 0o644))

	l := NewLoader(Config{Source: path}, nil)
	res := l.Load(context.Background())

	require.NoError(t, res.Err)
	assert.Equal(t, OriginSource, res.Origin)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Chile", res.Items[0].Country)
	assert.Equal(t, 2, res.MissingFlags)
}

func TestLoad_FallsBackToCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := newMemCache()
	cache.data[DefaultCacheKey] = franceManifest
	l := NewLoader(Config{Source: srv.URL}, cache)

	res := l.Load(context.Background())
	assert.Equal(t, OriginCache, res.Origin)
	require.Len(t, res.Items, 1)

	var fetchErr *FetchError
	require.ErrorAs(t, res.Err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "HTTP 404")
}

func TestLoad_InvalidSourceJSONFallsBackToCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	cache := newMemCache()
	cache.data[DefaultCacheKey] = franceManifest
	l := NewLoader(Config{Source: srv.URL}, cache)

	res := l.Load(context.Background())
	assert.Equal(t, OriginCache, res.Origin)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, franceManifest, cache.data[DefaultCacheKey], "cache must not be overwritten by invalid data")
}

func TestLoad_NothingAvailable(t *testing.T) {
	l := NewLoader(Config{Source: filepath.Join(t.TempDir(), "missing.json")}, newMemCache())

	res := l.Load(context.Background())
	assert.Equal(t, OriginNone, res.Origin)
	assert.Empty(t, res.Items)
	assert.True(t, errors.Is(res.Err, ErrDataUnavailable))
}

func TestLoad_NoSourceUsesCache(t *testing.T) {
	cache := newMemCache()
	cache.data["custom"] = franceManifest
	l := NewLoader(Config{CacheKey: "custom"}, cache)

	res := l.Load(context.Background())
	assert.NoError(t, res.Err)
	assert.Equal(t, OriginCache, res.Origin)
	assert.Len(t, res.Items, 1)
}

func TestLoad_CacheWriteFailureIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(franceManifest))
	}))
	defer srv.Close()

	cache := newMemCache()
	cache.putErr = errors.New("disk full")
	l := NewLoader(Config{Source: srv.URL}, cache)

	res := l.Load(context.Background())
	assert.NoError(t, res.Err)
	assert.Equal(t, OriginSource, res.Origin)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, []string{"warning: failed to cache manifest: disk full"}, res.Warnings)
}

func TestLoad_CacheReadFailureIsReported(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("database is locked")
	l := NewLoader(Config{Source: filepath.Join(t.TempDir(), "missing.json")}, cache)

	res := l.Load(context.Background())
	assert.Equal(t, OriginNone, res.Origin)
	assert.ErrorIs(t, res.Err, ErrDataUnavailable)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "warning: failed to read cached manifest: database is locked")
}

func TestLoad_NoWarningsOnCleanLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags_manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(franceManifest), 0o644))
	l := NewLoader(Config{Source: path}, newMemCache())

	res := l.Load(context.Background())
	assert.Equal(t, OriginSource, res.Origin)
	assert.Empty(t, res.Warnings)
}

func TestImport(t *testing.T) {
	cache := newMemCache()
	l := NewLoader(DefaultConfig(), cache)

	t.Run("valid", func(t *testing.T) {
		items, err := l.Import(context.Background(), []byte(franceManifest))
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, franceManifest, cache.data[DefaultCacheKey])
	})

	t.Run("invalid leaves cache untouched", func(t *testing.T) {
		_, err := l.Import(context.Background(), []byte(`[1,2,3]`))
		var invErr *InvalidJSONError
		require.ErrorAs(t, err, &invErr)
		assert.Equal(t, franceManifest, cache.data[DefaultCacheKey])
	})
}

func TestClearCache(t *testing.T) {
	cache := newMemCache()
	cache.data[DefaultCacheKey] = franceManifest
	l := NewLoader(DefaultConfig(), cache)

	require.NoError(t, l.ClearCache(context.Background()))
	assert.Empty(t, cache.data)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GEOQUIZ_MANIFEST", "https://example.com/m.json")
	t.Setenv("GEOQUIZ_FETCH_TIMEOUT", "3s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "https://example.com/m.json", cfg.Source)
	assert.Equal(t, "3s", cfg.Timeout.String())
	assert.Equal(t, DefaultCacheKey, cfg.CacheKey)
}
