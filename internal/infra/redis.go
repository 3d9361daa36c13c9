// README: Redis client initialization for the search-result cache.
package infra

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client tuned for cache traffic: short timeouts and a single
// retry, so an unhealthy redis degrades searches to cache misses instead of
// stalling them.
func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		MaxRetries:   1,
	})
}
