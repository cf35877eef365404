package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/otsbank/bankcore/internal/domain"
)

// CountryCacheKey is the single key the country collection is cached under.
const CountryCacheKey = "countries:active:v1"

// CountryCache implements usecase.SharedCountryCache on Redis. The whole
// collection is stored as one JSON value; every Set is a single atomic
// replace. Hits extend the key TTL (sliding expiration) but never past the
// absolute cap measured from when the value was written.
type CountryCache struct {
	client      *redis.Client
	key         string
	slidingTTL  time.Duration
	absoluteTTL time.Duration
}

// NewCountryCache creates a new CountryCache.
func NewCountryCache(client *redis.Client, slidingTTL, absoluteTTL time.Duration) *CountryCache {
	return &CountryCache{
		client:      client,
		key:         CountryCacheKey,
		slidingTTL:  slidingTTL,
		absoluteTTL: absoluteTTL,
	}
}

type envelope struct {
	CachedAt  time.Time         `json:"cached_at"`
	Countries []*domain.Country `json:"countries"`
}

// Get returns the cached collection, reporting a miss when the key is absent
// or past its absolute lifetime.
func (c *CountryCache) Get(ctx context.Context) ([]*domain.Country, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("get country cache: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, fmt.Errorf("decode country cache: %w", err)
	}

	age := time.Since(env.CachedAt)
	if age >= c.absoluteTTL {
		_ = c.client.Del(ctx, c.key).Err()
		return nil, false, nil
	}

	// Touch: slide the expiration forward, capped by the absolute lifetime.
	ttl := c.slidingTTL
	if remaining := c.absoluteTTL - age; remaining < ttl {
		ttl = remaining
	}

	if err := c.client.Expire(ctx, c.key, ttl).Err(); err != nil {
		return nil, false, fmt.Errorf("touch country cache: %w", err)
	}

	return env.Countries, true, nil
}

// Set replaces the cached collection.
func (c *CountryCache) Set(ctx context.Context, countries []*domain.Country) error {
	data, err := json.Marshal(envelope{
		CachedAt:  time.Now().UTC(),
		Countries: countries,
	})
	if err != nil {
		return fmt.Errorf("encode country cache: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, c.slidingTTL).Err(); err != nil {
		return fmt.Errorf("set country cache: %w", err)
	}

	return nil
}

// Remove evicts the cached collection.
func (c *CountryCache) Remove(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("evict country cache: %w", err)
	}

	return nil
}
