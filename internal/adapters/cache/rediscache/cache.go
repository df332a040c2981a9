// Package rediscache implements ports.RatingCache on Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Cache stores assessments as JSON strings with a TTL.
type Cache struct {
	c *redis.Client
}

// New creates a cache. The connection is established lazily.
func New(cfg Config) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

type entry struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// Get returns the cached assessment for key. A missing key is not an error.
func (r *Cache) Get(ctx context.Context, key string) (domain.Assessment, bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Assessment{}, false, nil
	}

	if err != nil {
		return domain.Assessment{}, false, fmt.Errorf("redis get: %w", err)
	}

	var e entry
	if err := json.Unmarshal(v, &e); err != nil {
		return domain.Assessment{}, false, fmt.Errorf("decode cached assessment: %w", err)
	}

	return domain.Assessment{Rating: e.Rating, Feedback: e.Feedback}, true, nil
}

// Set stores a under key for ttl.
func (r *Cache) Set(ctx context.Context, key string, a domain.Assessment, ttl time.Duration) error {
	b, err := json.Marshal(entry{Rating: a.Rating, Feedback: a.Feedback})
	if err != nil {
		return fmt.Errorf("encode assessment: %w", err)
	}

	if err := r.c.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Name returns the health check name.
func (r *Cache) Name() string {
	return "redis"
}

// Optional reports that the service keeps working without the cache.
func (r *Cache) Optional() bool {
	return true
}

// Check pings Redis.
func (r *Cache) Check(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

// Close closes the connection pool.
func (r *Cache) Close() error {
	return r.c.Close()
}
