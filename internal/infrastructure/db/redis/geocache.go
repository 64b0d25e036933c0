package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geotrace/geolocation-api/internal/api/metrics"
	"github.com/geotrace/geolocation-api/internal/core/domain"
)

// GeoCache stores geolocation lookups in Redis as JSON.
// Key format: geo:<ip>
type GeoCache struct {
	client *redis.Client
}

// NewGeoCache creates a GeoCache wrapping the given Redis client.
func NewGeoCache(client *redis.Client) *GeoCache {
	return &GeoCache{client: client}
}

// Get returns the cached geolocation for ip, or (nil, nil) on a miss.
func (c *GeoCache) Get(ctx context.Context, ip string) (*domain.Geolocation, error) {
	raw, err := c.client.Get(ctx, c.key(ip)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.GeoCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("geo cache get: %w", err)
	}

	var geo domain.Geolocation
	if err := json.Unmarshal(raw, &geo); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		metrics.GeoCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.GeoCacheTotal.WithLabelValues("hit").Inc()
	return &geo, nil
}

// Set stores geo under ip, expiring after ttl.
func (c *GeoCache) Set(ctx context.Context, ip string, geo *domain.Geolocation, ttl time.Duration) error {
	raw, err := json.Marshal(geo)
	if err != nil {
		return fmt.Errorf("geo cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(ip), raw, ttl).Err()
}

func (c *GeoCache) key(ip string) string {
	return "geo:" + ip
}
