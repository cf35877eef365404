package memory

import (
	"testing"
	"time"

	"github.com/otsbank/bankcore/internal/domain"
)

func testCountries() []*domain.Country {
	return []*domain.Country{
		{Audited: domain.Audited{ID: "cty-1", IsActive: true}, Name: "Turkey", IsoCode: "TR"},
	}
}

func TestCountryCacheSetAndGet(t *testing.T) {
	cache := NewCountryCache(time.Minute, time.Hour)

	cache.Set(testCountries())

	countries, ok := cache.Get()
	if !ok {
		t.Fatalf("expected hit after set")
	}

	if len(countries) != 1 || countries[0].IsoCode != "TR" {
		t.Fatalf("unexpected cached collection: %+v", countries)
	}
}

func TestCountryCacheMissWhenEmpty(t *testing.T) {
	cache := NewCountryCache(time.Minute, time.Hour)

	if _, ok := cache.Get(); ok {
		t.Fatalf("expected miss on empty cache")
	}
}

func TestCountryCacheSlidingExpiration(t *testing.T) {
	cache := NewCountryCache(20*time.Millisecond, time.Hour)

	cache.Set(testCountries())

	// Hits inside the window keep the entry alive past the original
	// deadline.
	for i := 0; i < 3; i++ {
		time.Sleep(10 * time.Millisecond)
		if _, ok := cache.Get(); !ok {
			t.Fatalf("expected hit %d to keep the entry alive", i)
		}
	}

	// Without hits the window runs out.
	time.Sleep(30 * time.Millisecond)
	if _, ok := cache.Get(); ok {
		t.Fatalf("expected miss after sliding TTL")
	}
}

func TestCountryCacheAbsoluteLifetime(t *testing.T) {
	cache := NewCountryCache(time.Minute, 20*time.Millisecond)

	cache.Set(testCountries())

	time.Sleep(30 * time.Millisecond)

	// Still within the sliding TTL, but past the absolute lifetime.
	if _, ok := cache.Get(); ok {
		t.Fatalf("expected miss past absolute lifetime")
	}
}

func TestCountryCacheRemove(t *testing.T) {
	cache := NewCountryCache(time.Minute, time.Hour)

	cache.Set(testCountries())
	cache.Remove()

	if _, ok := cache.Get(); ok {
		t.Fatalf("expected miss after remove")
	}
}

func TestCountryCacheSetReplaces(t *testing.T) {
	cache := NewCountryCache(time.Minute, time.Hour)

	cache.Set(testCountries())
	cache.Set([]*domain.Country{
		{Audited: domain.Audited{ID: "cty-2", IsActive: true}, Name: "Greece", IsoCode: "GR"},
	})

	countries, ok := cache.Get()
	if !ok || len(countries) != 1 || countries[0].IsoCode != "GR" {
		t.Fatalf("expected replaced collection, got %+v", countries)
	}
}
