package memory

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/otsbank/bankcore/internal/domain"
)

const countryCacheKey = "countries:active:v1"

// CountryCache implements usecase.LocalCountryCache in process memory. The
// collection is held in its decoded form. ttlcache touches entries on hit,
// which gives the sliding expiration; the absolute lifetime is enforced
// against the time the entry was written. Expired entries are dropped lazily
// on read, so no background eviction goroutine runs.
type CountryCache struct {
	cache       *ttlcache.Cache[string, entry]
	absoluteTTL time.Duration
}

type entry struct {
	cachedAt  time.Time
	countries []*domain.Country
}

// NewCountryCache creates a new CountryCache.
func NewCountryCache(slidingTTL, absoluteTTL time.Duration) *CountryCache {
	return &CountryCache{
		cache: ttlcache.New[string, entry](
			ttlcache.WithTTL[string, entry](slidingTTL),
		),
		absoluteTTL: absoluteTTL,
	}
}

// Get returns the cached collection, reporting a miss when absent, past the
// sliding TTL, or past the absolute lifetime.
func (c *CountryCache) Get() ([]*domain.Country, bool) {
	item := c.cache.Get(countryCacheKey)
	if item == nil {
		return nil, false
	}

	e := item.Value()
	if time.Since(e.cachedAt) >= c.absoluteTTL {
		c.cache.Delete(countryCacheKey)
		return nil, false
	}

	return e.countries, true
}

// Set replaces the cached collection in one atomic store.
func (c *CountryCache) Set(countries []*domain.Country) {
	c.cache.Set(countryCacheKey, entry{
		cachedAt:  time.Now().UTC(),
		countries: countries,
	}, ttlcache.DefaultTTL)
}

// Remove evicts the cached collection.
func (c *CountryCache) Remove() {
	c.cache.Delete(countryCacheKey)
}
