// Package trackingcache provides a Redis-backed implementation of the public
// tracking cache. Snapshots are stored as JSON under the tracking number with
// a fixed TTL; lifecycle transitions invalidate the entry eagerly.
package trackingcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"courier/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a snapshot can outlive its package when an
// invalidation is lost.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "tracking:"

// RedisTrackingCache implements ports.TrackingCache on a Redis client.
type RedisTrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTrackingCache creates a tracking cache on the given client.
// A non-positive ttl falls back to DefaultTTL.
func NewRedisTrackingCache(client *redis.Client, ttl time.Duration) *RedisTrackingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisTrackingCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or (nil, nil) on a cache miss.
func (c *RedisTrackingCache) Get(ctx context.Context, trackingNumber string) (*ports.TrackingSnapshot, error) {
	payload, err := c.client.Get(ctx, keyPrefix+trackingNumber).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snapshot ports.TrackingSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Set stores a snapshot under its tracking number with the configured TTL.
func (c *RedisTrackingCache) Set(ctx context.Context, snapshot *ports.TrackingSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyPrefix+snapshot.TrackingNumber, payload, c.ttl).Err()
}

// Invalidate drops the entry for a tracking number. Deleting a missing key
// is not an error.
func (c *RedisTrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	return c.client.Del(ctx, keyPrefix+trackingNumber).Err()
}
