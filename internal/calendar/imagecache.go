package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ImageCache stores previously resolved image bytes keyed by source
// URL. It is a best-effort cache for the export feature, never
// authoritative data.
type ImageCache interface {
	Get(ctx context.Context, url string) ([]byte, bool)
	Set(ctx context.Context, url string, data []byte)
}

// MemoryImageCache is the in-process default.
type MemoryImageCache struct {
	mu     sync.Mutex
	images map[string][]byte
}

func NewMemoryImageCache() *MemoryImageCache {
	return &MemoryImageCache{images: make(map[string][]byte)}
}

func (c *MemoryImageCache) Get(_ context.Context, url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.images[url]
	return data, ok
}

func (c *MemoryImageCache) Set(_ context.Context, url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[url] = data
}

// RedisImageCache persists resolved images across restarts.
type RedisImageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisImageCache(client *redis.Client, ttl time.Duration) *RedisImageCache {
	return &RedisImageCache{client: client, ttl: ttl}
}

func (c *RedisImageCache) Get(ctx context.Context, url string) ([]byte, bool) {
	data, err := c.client.Get(ctx, "calendar:image:"+url).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *RedisImageCache) Set(ctx context.Context, url string, data []byte) {
	c.client.Set(ctx, "calendar:image:"+url, data, c.ttl)
}
