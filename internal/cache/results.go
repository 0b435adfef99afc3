// Package cache provides a Redis-backed cache for completed inference
// results, keyed by a digest of the request so identical requests skip the
// remote round trip.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/runpod"
)

const (
	resultKeyPrefix = "inference:result:"
	// DefaultTTL bounds how long a cached result is served.
	DefaultTTL = 10 * time.Minute
)

// ResultCache stores normalized results in Redis.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a cache backed by the given Redis server.
func NewResultCache(addr, password string, db int) *ResultCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &ResultCache{client: client, ttl: DefaultTTL}
}

// Key derives a stable cache key from the task name and request payload.
// Payload keys are sorted so logically equal requests hash identically.
func Key(task string, payload map[string]interface{}) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(task))
	for _, k := range keys {
		v, _ := json.Marshal(payload[k])
		fmt.Fprintf(h, "|%s=%s", k, v)
	}
	return resultKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key, or nil on a miss.
func (c *ResultCache) Get(ctx context.Context, key string) (*runpod.NormalizedResult, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result runpod.NormalizedResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set stores a result under key for the cache TTL.
func (c *ResultCache) Set(ctx context.Context, key string, result runpod.NormalizedResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Ping checks the Redis connection.
func (c *ResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (c *ResultCache) Close() error {
	return c.client.Close()
}
