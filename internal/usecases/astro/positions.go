package astro

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/astrotime"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
	"github.com/admin/astro-core/internal/pkg/metrics"
)

func positionsCacheKey(at time.Time) string {
	return fmt.Sprintf("astro:positions:%s", at.UTC().Format(time.RFC3339))
}

// PlanetaryPositions положения всех тел на момент at
func PlanetaryPositions(at time.Time) domain.PlanetaryPositions {
	return domain.PlanetaryPositions{
		Date:   at.UTC(),
		Bodies: ephemeris.OrderedPositions(astrotime.JulianDay(at)),
	}
}

// GetCurrentPlanetaryPositions положения на дату. Пустая дата = сейчас, без кэша;
// явная дата кэшируется
func (s *Service) GetCurrentPlanetaryPositions(ctx context.Context, date string) (*domain.PlanetaryPositions, error) {
	if isBlank(date) {
		result := PlanetaryPositions(s.Now())
		return &result, nil
	}

	at, err := ParseDate(date, s.Now().UTC())
	if err != nil {
		return nil, err
	}

	key := positionsCacheKey(at)
	if s.Cache != nil {
		var cached domain.PlanetaryPositions
		hit := s.cacheGet(ctx, key, &cached)
		metrics.RecordCacheLookup("positions", hit)
		if hit {
			return &cached, nil
		}
	}

	result := PlanetaryPositions(at)
	s.cacheSet(ctx, key, result, s.Cfg.PositionsCacheTTL)
	return &result, nil
}

// UpdateCachedPositions пересчитывает положения на полночь UTC дня day и кладёт их в кэш
func (s *Service) UpdateCachedPositions(ctx context.Context, day time.Time) error {
	if s.Cache == nil {
		return nil
	}

	at := truncateDay(day)
	payload, err := json.Marshal(PlanetaryPositions(at))
	if err != nil {
		return fmt.Errorf("failed to encode positions: %w", err)
	}

	key := positionsCacheKey(at)
	if err := s.Cache.Set(ctx, key, string(payload), s.Cfg.PositionsCacheTTL); err != nil {
		return fmt.Errorf("failed to cache positions: %w", err)
	}

	s.Log.Debug("planetary positions cached", "cache_key", key)
	return nil
}
