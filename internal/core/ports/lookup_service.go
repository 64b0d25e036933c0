package ports

import (
	"context"
	"time"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

// GeoProvider is the upstream geolocation source (ipinfo.io in production).
type GeoProvider interface {
	// Lookup resolves geolocation for the given IP. An empty ip resolves the
	// caller's own address, mirroring the provider's /geo endpoint.
	Lookup(ctx context.Context, ip string) (*domain.Geolocation, error)
}

// GeoCache stores lookup results keyed by IP with a TTL. A miss is reported
// as (nil, nil).
type GeoCache interface {
	Get(ctx context.Context, ip string) (*domain.Geolocation, error)
	Set(ctx context.Context, ip string, geo *domain.Geolocation, ttl time.Duration) error
}

// LookupService resolves IP geolocation, consulting the cache before the
// upstream provider.
type LookupService interface {
	Lookup(ctx context.Context, ip string) (*domain.Geolocation, error)
}
