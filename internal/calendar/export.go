package calendar

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// resolveBatchSize bounds how many images are fetched at once so a
// large calendar does not starve everything else while exporting.
const resolveBatchSize = 3

// maxImageBytes caps a single fetched image.
const maxImageBytes = 5 << 20

// Resolver turns remote image URLs into embeddable data URLs for the
// export renderer. Resolution order: cache, direct fetch, then each
// proxy in turn; if everything fails the original URL is returned
// unresolved so the export still renders with a remote reference.
type Resolver struct {
	cache      ImageCache
	httpClient *http.Client
	logger     *slog.Logger
	proxies    []func(string) string
}

func NewResolver(cache ImageCache, logger *slog.Logger) *Resolver {
	return &Resolver{
		cache: cache,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		proxies: []func(string) string{
			func(u string) string { return u },
			func(u string) string {
				return "https://api.allorigins.win/raw?url=" + url.QueryEscape(u)
			},
			func(u string) string {
				return "https://corsproxy.io/?" + url.QueryEscape(u)
			},
		},
	}
}

// Resolve returns a data URL for the image, or the original URL when
// every strategy fails.
func (r *Resolver) Resolve(ctx context.Context, imageURL string) string {
	if imageURL == "" {
		return ""
	}

	if data, ok := r.cache.Get(ctx, imageURL); ok {
		return dataURL(data)
	}

	for _, proxy := range r.proxies {
		data, err := r.fetch(ctx, proxy(imageURL))
		if err != nil {
			r.logger.Debug("image fetch attempt failed", "url", imageURL, "error", err)
			continue
		}
		r.cache.Set(ctx, imageURL, data)
		return dataURL(data)
	}

	r.logger.Warn("image unresolved, exporting remote reference", "url", imageURL)
	return imageURL
}

// ResolveAll resolves every distinct URL, a few at a time.
func (r *Resolver) ResolveAll(ctx context.Context, urls []string) map[string]string {
	distinct := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		distinct = append(distinct, u)
	}

	resolved := make(map[string]string, len(distinct))
	for start := 0; start < len(distinct); start += resolveBatchSize {
		end := start + resolveBatchSize
		if end > len(distinct) {
			end = len(distinct)
		}
		for _, u := range distinct[start:end] {
			if ctx.Err() != nil {
				return resolved
			}
			resolved[u] = r.Resolve(ctx, u)
		}
	}
	return resolved
}

func (r *Resolver) fetch(ctx context.Context, fetchURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return data, nil
}

func dataURL(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
