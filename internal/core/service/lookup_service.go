package service

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/geotrace/geolocation-api/internal/core/domain"
	"github.com/geotrace/geolocation-api/internal/core/ports"
)

type lookupService struct {
	provider ports.GeoProvider
	cache    ports.GeoCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewLookupService returns a LookupService doing cache-aside resolution:
// Redis first, upstream on miss, cache fill on success.
func NewLookupService(provider ports.GeoProvider, cache ports.GeoCache, cacheTTL time.Duration, log zerolog.Logger) ports.LookupService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &lookupService{provider: provider, cache: cache, cacheTTL: cacheTTL, log: log}
}

// Lookup resolves geolocation for ip. An empty ip means "the caller's own
// address" and always goes upstream, since the answer depends on the
// requesting connection rather than a cacheable key.
func (s *lookupService) Lookup(ctx context.Context, ip string) (*domain.Geolocation, error) {
	if ip == "" {
		return s.fetch(ctx, ip)
	}

	if net.ParseIP(ip) == nil {
		return nil, domain.ErrInvalidIP
	}

	// Cache errors degrade to an upstream fetch; the cache is an optimization,
	// never a dependency.
	cached, err := s.cache.Get(ctx, ip)
	if err != nil {
		s.log.Warn().Err(err).Str("ip", ip).Msg("geo cache read failed, falling through")
	} else if cached != nil {
		s.log.Debug().Str("ip", ip).Msg("geo cache hit")
		return cached, nil
	}

	geo, err := s.fetch(ctx, ip)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, ip, geo, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("ip", ip).Msg("failed to set geo cache key")
	}

	return geo, nil
}

func (s *lookupService) fetch(ctx context.Context, ip string) (*domain.Geolocation, error) {
	geo, err := s.provider.Lookup(ctx, ip)
	if err != nil {
		s.log.Error().Err(err).Str("ip", ip).Msg("upstream geolocation lookup failed")
		return nil, domain.ErrLookupFailed
	}
	return geo, nil
}
