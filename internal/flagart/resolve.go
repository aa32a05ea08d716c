package flagart

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// maxImageBytes bounds a single flag download.
const maxImageBytes = 4 << 20

// ErrNoFlag is returned for items without a flag path.
var ErrNoFlag = errors.New("no flag path")

// Resolver locates flag images relative to the manifest source and renders
// them, caching the rendered art per path and width.
type Resolver struct {
	base   string
	client *http.Client

	mu    sync.Mutex
	cache map[string]string
}

// NewResolver creates a resolver for flag paths found in the manifest at
// source, which may be an http(s) URL or a local file path. An empty source
// resolves relative paths against the working directory.
func NewResolver(source string, client *http.Client) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{
		base:   source,
		client: client,
		cache:  make(map[string]string),
	}
}

// Locate returns the URL or file path a flag path points to.
func (r *Resolver) Locate(flagPath string) string {
	if flagPath == "" || isRemote(flagPath) || strings.HasPrefix(flagPath, "data:") {
		return flagPath
	}
	if isRemote(r.base) {
		base, err := url.Parse(r.base)
		if err == nil {
			if ref, err := url.Parse(flagPath); err == nil {
				return base.ResolveReference(ref).String()
			}
		}
		return flagPath
	}

	rel := filepath.FromSlash(strings.TrimPrefix(flagPath, "/"))
	if r.base == "" {
		return rel
	}
	return filepath.Join(filepath.Dir(r.base), rel)
}

// Load fetches and decodes the image at flagPath.
func (r *Resolver) Load(ctx context.Context, flagPath string) (image.Image, error) {
	if flagPath == "" {
		return nil, ErrNoFlag
	}
	raw, err := r.read(ctx, r.Locate(flagPath))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", flagPath, err)
	}
	return img, nil
}

// Art returns the rendered flag at width columns, or a placeholder box when
// the image cannot be loaded.
func (r *Resolver) Art(ctx context.Context, flagPath string, width int) string {
	key := fmt.Sprintf("%d:%s", width, flagPath)
	r.mu.Lock()
	art, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return art
	}

	img, err := r.Load(ctx, flagPath)
	if err != nil {
		label := "flag unavailable"
		if errors.Is(err, ErrNoFlag) {
			label = "no flag"
		}
		// Not cached: a later attempt may succeed.
		return Placeholder(width, width/2, label)
	}

	art = Render(img, width)
	r.mu.Lock()
	r.cache[key] = art
	r.mu.Unlock()
	return art
}

func (r *Resolver) read(ctx context.Context, loc string) ([]byte, error) {
	switch {
	case strings.HasPrefix(loc, "data:"):
		return decodeDataURI(loc)
	case isRemote(loc):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", loc, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", loc, resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	default:
		raw, err := os.ReadFile(loc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", loc, err)
		}
		return raw, nil
	}
}

// decodeDataURI handles base64 data URIs such as data:image/png;base64,....
func decodeDataURI(uri string) ([]byte, error) {
	meta, data, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return raw, nil
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
