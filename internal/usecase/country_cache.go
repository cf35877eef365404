package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/infrastructure/metrics"
)

// CacheTier selects which cache backend serves a country read. The tier is
// always caller-supplied; an unrecognized tier is rejected, never defaulted.
type CacheTier string

const (
	CacheTierMemory CacheTier = "memory"
	CacheTierRedis  CacheTier = "redis"
)

// ParseCacheTier parses a caller-supplied cache tier name.
func ParseCacheTier(s string) (CacheTier, error) {
	switch CacheTier(s) {
	case CacheTierMemory:
		return CacheTierMemory, nil
	case CacheTierRedis:
		return CacheTierRedis, nil
	default:
		return "", domain.ErrInvalidCacheTier
	}
}

// CountryCache keeps the active country collection in two independent cache
// tiers, both consistent with the database. Each tier misses and refreshes on
// its own; a miss in one tier never reads from the other.
type CountryCache struct {
	local       LocalCountryCache
	shared      SharedCountryCache
	countryRepo CountryRepository
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewCountryCache creates a new CountryCache. The metrics argument may be nil.
func NewCountryCache(local LocalCountryCache, shared SharedCountryCache, countryRepo CountryRepository, logger zerolog.Logger, m *metrics.Metrics) *CountryCache {
	return &CountryCache{
		local:       local,
		shared:      shared,
		countryRepo: countryRepo,
		logger:      logger,
		metrics:     m,
	}
}

// Read returns the cached collection for the tier, falling through to the
// database and repopulating that tier on a miss.
func (c *CountryCache) Read(ctx context.Context, tier CacheTier) ([]*domain.Country, error) {
	switch tier {
	case CacheTierMemory:
		if countries, ok := c.local.Get(); ok {
			c.recordRead(tier, "hit")
			return countries, nil
		}

		c.recordRead(tier, "miss")

		countries, err := c.countryRepo.ListActive(ctx)
		if err != nil {
			return nil, err
		}

		c.local.Set(countries)

		return countries, nil

	case CacheTierRedis:
		countries, ok, err := c.shared.Get(ctx)
		if err != nil {
			// Treated as a miss: the database remains the source of truth.
			c.logger.Warn().Err(err).Msg("shared country cache read failed")
		}

		if ok {
			c.recordRead(tier, "hit")
			return countries, nil
		}

		c.recordRead(tier, "miss")

		countries, err = c.countryRepo.ListActive(ctx)
		if err != nil {
			return nil, err
		}

		if err := c.shared.Set(ctx, countries); err != nil {
			c.logger.Warn().Err(err).Msg("shared country cache populate failed")
		}

		return countries, nil

	default:
		return nil, domain.ErrInvalidCacheTier
	}
}

// Refresh evicts both tiers, reloads the active collection once and
// repopulates them. It runs inline after every country mutation. Failures are
// logged and swallowed: the mutation has already committed, and a later
// read-miss repopulates correctly, so staleness is bounded by the TTLs.
func (c *CountryCache) Refresh(ctx context.Context) {
	if c.metrics != nil {
		c.metrics.CacheRefreshes.Inc()
	}

	c.local.Remove()

	if err := c.shared.Remove(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("shared country cache evict failed")
	}

	countries, err := c.countryRepo.ListActive(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("country cache refresh failed, tiers left empty")
		return
	}

	c.local.Set(countries)

	if err := c.shared.Set(ctx, countries); err != nil {
		c.logger.Warn().Err(err).Msg("shared country cache refresh failed")
	}
}

func (c *CountryCache) recordRead(tier CacheTier, result string) {
	if c.metrics != nil {
		c.metrics.CacheReads.WithLabelValues(string(tier), result).Inc()
	}
}
