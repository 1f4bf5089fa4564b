package calendar

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestResolve_CacheHitShortCircuitsNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	cache := NewMemoryImageCache()
	cache.Set(context.Background(), srv.URL+"/cover.png", []byte("cached-bytes"))
	r := NewResolver(cache, testLogger())

	got := r.Resolve(context.Background(), srv.URL+"/cover.png")

	assert.True(t, strings.HasPrefix(got, "data:"))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestResolve_DirectFetchPopulatesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	cache := NewMemoryImageCache()
	r := NewResolver(cache, testLogger())

	got := r.Resolve(context.Background(), srv.URL+"/cover.png")

	assert.True(t, strings.HasPrefix(got, "data:"))
	_, cached := cache.Get(context.Background(), srv.URL+"/cover.png")
	assert.True(t, cached)
}

func TestResolve_FallsBackThroughProxyChain(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer direct.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("proxied-bytes"))
	}))
	defer proxy.Close()

	r := NewResolver(NewMemoryImageCache(), testLogger())
	r.proxies = []func(string) string{
		func(u string) string { return u },
		func(string) string { return proxy.URL },
	}

	got := r.Resolve(context.Background(), direct.URL+"/cover.png")

	assert.True(t, strings.HasPrefix(got, "data:"))
}

func TestResolve_TotalFailureReturnsOriginalURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewResolver(NewMemoryImageCache(), testLogger())
	r.proxies = []func(string) string{
		func(u string) string { return u },
	}

	original := srv.URL + "/cover.png"
	got := r.Resolve(context.Background(), original)

	assert.Equal(t, original, got)
}

func TestResolveAll_DeduplicatesAndSkipsEmpty(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("bytes"))
	}))
	defer srv.Close()

	r := NewResolver(NewMemoryImageCache(), testLogger())

	url := srv.URL + "/a.png"
	got := r.ResolveAll(context.Background(), []string{url, url, ""})

	require.Len(t, got, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestResolveAll_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResolver(NewMemoryImageCache(), testLogger())

	got := r.ResolveAll(ctx, []string{"http://example.invalid/a.png"})

	assert.Empty(t, got)
}
