package geo

import (
	"context"
	"log/slog"
)

// LocationCache is the cache surface needed by CachedGeocoder.
// Implemented by cache.Cache.
type LocationCache interface {
	Get(ctx context.Context, location string) (*Location, error)
	Set(ctx context.Context, location string, loc *Location) error
}

// LocationResolver is the geocoding surface wrapped by CachedGeocoder.
type LocationResolver interface {
	Geocode(ctx context.Context, location string) (*Location, error)
}

// CachedGeocoder checks the cache before falling through to the wrapped
// geocoder. Cache failures are logged and never fail the lookup; negative
// results are not cached so a typo fixed upstream resolves immediately.
type CachedGeocoder struct {
	inner LocationResolver
	cache LocationCache
	log   *slog.Logger
}

// NewCachedGeocoder wraps inner with the given cache.
func NewCachedGeocoder(inner LocationResolver, cache LocationCache, log *slog.Logger) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cache: cache, log: log}
}

// Geocode resolves a location, serving repeated lookups from the cache.
func (g *CachedGeocoder) Geocode(ctx context.Context, location string) (*Location, error) {
	cached, err := g.cache.Get(ctx, location)
	if err != nil {
		g.log.Warn("geocode cache get failed", "location", location, "err", err)
	}
	if cached != nil {
		return cached, nil
	}

	loc, err := g.inner.Geocode(ctx, location)
	if err != nil || loc == nil {
		return loc, err
	}

	if err := g.cache.Set(ctx, location, loc); err != nil {
		g.log.Warn("geocode cache set failed", "location", location, "err", err)
	}

	return loc, nil
}
