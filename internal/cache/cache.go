package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripscout/tripscout/internal/geo"
)

// Geocode results are effectively static, but a bounded TTL keeps stale
// Postcodes.io data from sticking around forever.
const defaultTTL = 24 * time.Hour

// Cache stores geocode results in Redis so repeated searches from the same
// postcode or city skip the Postcodes.io round trip.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a Cache with the default TTL.
func New(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// key normalizes a free-text location into a Redis key.
func key(location string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(location))
}

// Get retrieves a cached geocode result.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, location string) (*geo.Location, error) {
	val, err := c.client.Get(ctx, key(location)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for location %s: %w", location, err)
	}

	var loc geo.Location
	if err := json.Unmarshal([]byte(val), &loc); err != nil {
		return nil, fmt.Errorf("unmarshaling cached location for %s: %w", location, err)
	}

	return &loc, nil
}

// Set stores a geocode result with the configured TTL.
func (c *Cache) Set(ctx context.Context, location string, loc *geo.Location) error {
	if loc == nil {
		return nil
	}

	b, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshaling location for %s: %w", location, err)
	}

	if err := c.client.Set(ctx, key(location), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for location %s: %w", location, err)
	}

	return nil
}
