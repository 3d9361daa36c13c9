package search

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "search:q:"

// Cache keeps recent query results in redis. Every cache error is treated as a
// miss; the cache can never make a search fail.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns a Cache with the given TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(query string) string {
	sum := sha1.Sum([]byte(query))
	return cachePrefix + hex.EncodeToString(sum[:])
}

// Get looks up cached results for a query.
func (c *Cache) Get(ctx context.Context, query string) ([]Result, bool) {
	data, err := c.client.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return nil, false
	}
	var results []Result
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, false
	}
	return results, true
}

// Set stores results for a query. Errors are dropped.
func (c *Cache) Set(ctx context.Context, query string, results []Result) {
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(query), data, c.ttl)
}
