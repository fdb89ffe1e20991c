// Package cache is the read surface's per-tenant result cache: it holds
// computed architecture/graph responses behind a TTL and is invalidated
// whenever new spans land for a tenant, following the Redis client setup
// used elsewhere in the platform.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nexarch/core/internal/telemetry"
)

// Cache wraps a Redis client with tenant-namespaced keys and a fixed TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New builds a Cache pointed at addr. Password and db mirror
// redis.Options; db 0 and empty password are the common defaults.
func New(addr, password string, db int, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Ping verifies connectivity at startup.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get looks up a cached value for tenant+key and decodes it into dst.
// It reports ok=false on a cache miss or decode failure, never an error
// a caller should treat as fatal — a cache miss falls back to
// recomputation.
func (c *Cache) Get(ctx context.Context, tenant, key string, dst interface{}) bool {
	raw, err := c.client.Get(ctx, cacheKey(tenant, key)).Bytes()
	if err != nil {
		telemetry.RecordCacheOutcome(false)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		telemetry.RecordCacheOutcome(false)
		return false
	}
	telemetry.RecordCacheOutcome(true)
	return true
}

// Set stores value for tenant+key with the cache's configured TTL.
func (c *Cache) Set(ctx context.Context, tenant, key string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(tenant, key), encoded, c.ttl).Err()
}

// InvalidateTenant drops every cached entry for a tenant. It is called
// by the Ingestion Front once spans have been durably written, so a
// stale graph or issue list is never served after new data lands.
func (c *Cache) InvalidateTenant(ctx context.Context, tenant string) {
	pattern := cacheKey(tenant, "*")
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		c.client.Del(ctx, keys...)
	}
}

// Stats reports the size of Redis' keyspace under a single tenant's
// prefix, for the /api/v1/cache/stats introspection endpoint.
func (c *Cache) Stats(ctx context.Context, tenant string) (keyCount int64, err error) {
	iter := c.client.Scan(ctx, 0, cacheKey(tenant, "*"), 1000).Iterator()
	for iter.Next(ctx) {
		keyCount++
	}
	return keyCount, iter.Err()
}

func cacheKey(tenant, key string) string {
	return "nexarch:" + tenant + ":" + key
}
