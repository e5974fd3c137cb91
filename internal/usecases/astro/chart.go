package astro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/astrotime"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
	"github.com/admin/astro-core/internal/pkg/metrics"
	"github.com/admin/astro-core/internal/ports/cache"
	"github.com/admin/astro-core/internal/ports/persistence"
	"github.com/google/uuid"
)

func chartCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("astro:chart:%s", userID)
}

// CalculateChart собирает карту без сохранения
func (s *Service) CalculateChart(in domain.CreateChartInput) (*domain.BirthChart, *domain.BirthLocation, error) {
	moment, err := validateInput(in, s.Now().UTC())
	if err != nil {
		return nil, nil, err
	}
	return s.assemble(moment), moment.Location, nil
}

func (s *Service) assemble(moment *birthMoment) *domain.BirthChart {
	loc := moment.Location
	jd := astrotime.JulianDay(moment.Instant)
	positions := ephemeris.Positions(jd)

	chart := &domain.BirthChart{
		UserID:       loc.UserID,
		SunSign:      positions[domain.BodySun].Sign,
		MoonSign:     positions[domain.BodyMoon].Sign,
		Positions:    positions,
		CalculatedAt: s.Now().UTC(),
		Version:      s.Cfg.Version,
	}

	if loc.HasKnownTime() {
		houses := ephemeris.CalculateHouses(jd, loc.Latitude, loc.Longitude, s.Houses)
		asc, mc := houses.Ascendant, houses.Midheaven
		rising, _ := astrotime.DegreesToSign(asc)

		chart.Ascendant = &asc
		chart.Midheaven = &mc
		chart.RisingSign = &rising
		chart.HouseSystem = houses.System
		chart.Houses = make([]domain.HouseCusp, 0, len(houses.Cusps))
		for i, cusp := range houses.Cusps {
			sign, deg := astrotime.DegreesToSign(cusp)
			chart.Houses = append(chart.Houses, domain.HouseCusp{
				House:     i + 1,
				Longitude: cusp,
				Sign:      sign,
				Degree:    deg,
			})
		}
	}

	chart.Aspects = s.Aspects.Find(positions)
	chart.ElementBalance = ElementBalance(positions)
	chart.ModalityBalance = ModalityBalance(positions)
	chart.DominantBodies = DominantBodies(positions, chart.Aspects)
	chart.Interpretation = Interpret(chart)

	metrics.RecordChartCalculated(string(loc.BirthTimeAccuracy), chart.HouseSystem)
	return chart
}

// CreateOrUpdateChart пересчитывает и сохраняет карту пользователя.
// Данные рождения, карта и знак в профиле пишутся одной транзакцией,
// событие, архив и кэш обновляются после коммита и на результат не влияют
func (s *Service) CreateOrUpdateChart(ctx context.Context, in domain.CreateChartInput) (*domain.BirthChart, error) {
	moment, err := validateInput(in, s.Now().UTC())
	if err != nil {
		s.Log.Warn("invalid chart input", "error", err, "user_id", in.UserID)
		return nil, err
	}

	chart := s.assemble(moment)
	if err := s.persist(ctx, moment.Location, chart); err != nil {
		return nil, err
	}

	s.afterSave(ctx, chart)

	s.Log.Info("birth chart calculated",
		"user_id", chart.UserID,
		"sun_sign", chart.SunSign,
		"moon_sign", chart.MoonSign,
		"accuracy", moment.Location.BirthTimeAccuracy,
		"aspects", len(chart.Aspects),
	)
	return chart, nil
}

// RecalculateChart пересчитывает карту по сохранённым данным рождения (например после смены версии движка)
func (s *Service) RecalculateChart(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, error) {
	location, err := s.LocationRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrMissingLocation) {
		// нет данных рождения, значит нет и карты
		return nil, fmt.Errorf("%w: no birth location for user %s", domain.ErrChartNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load birth location: %w", err)
	}

	moment, err := momentFromLocation(location)
	if err != nil {
		return nil, fmt.Errorf("stored birth location is invalid: %w", err)
	}
	moment.Location.CreatedAt = location.CreatedAt

	chart := s.assemble(moment)
	if err := s.persist(ctx, moment.Location, chart); err != nil {
		return nil, err
	}
	s.afterSave(ctx, chart)

	s.Log.Info("birth chart recalculated", "user_id", userID, "version", chart.Version)
	return chart, nil
}

func (s *Service) persist(ctx context.Context, location *domain.BirthLocation, chart *domain.BirthChart) error {
	err := s.ChartRepo.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		if err := s.LocationRepo.UpsertTx(ctx, tx, location); err != nil {
			return err
		}
		if err := s.ChartRepo.UpsertTx(ctx, tx, chart); err != nil {
			return err
		}
		return s.ProfileRepo.UpdateZodiacTx(ctx, tx, chart.UserID, chart.SunSign, location.BirthDate)
	})
	if err != nil {
		s.Log.Error("failed to save birth chart", "error", err, "user_id", chart.UserID)
		return fmt.Errorf("failed to save birth chart: %w", err)
	}
	return nil
}

func (s *Service) afterSave(ctx context.Context, chart *domain.BirthChart) {
	if s.Events != nil {
		if err := s.Events.PublishChartCalculated(ctx, chart); err != nil {
			s.Log.Warn("failed to publish chart event", "error", err, "user_id", chart.UserID)
		}
	}

	if s.Archive != nil {
		path, err := s.Archive.Archive(ctx, chart)
		if err != nil {
			s.Log.Warn("failed to archive chart", "error", err, "user_id", chart.UserID)
		} else {
			s.Log.Debug("chart archived", "user_id", chart.UserID, "path", path)
		}
	}

	s.cacheChart(ctx, chart)
}

// GetBirthChart сначала кэш, затем БД. domain.ErrChartNotFound, если карты нет
func (s *Service) GetBirthChart(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, error) {
	if chart, ok := s.cachedChart(ctx, userID); ok {
		return chart, nil
	}

	chart, err := s.ChartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cacheChart(ctx, chart)
	return chart, nil
}

// ChartHistory пути архивных версий карты, новые первыми. Без архива список пуст
func (s *Service) ChartHistory(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if s.Archive == nil {
		return []string{}, nil
	}

	history, err := s.Archive.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chart history: %w", err)
	}
	return history, nil
}

func (s *Service) cachedChart(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, bool) {
	if s.Cache == nil {
		return nil, false
	}

	var chart domain.BirthChart
	hit := s.cacheGet(ctx, chartCacheKey(userID), &chart)
	metrics.RecordCacheLookup("chart", hit)
	if !hit {
		return nil, false
	}
	return &chart, true
}

func (s *Service) cacheChart(ctx context.Context, chart *domain.BirthChart) {
	s.cacheSet(ctx, chartCacheKey(chart.UserID), chart, s.Cfg.ChartCacheTTL)
}

// cacheGet false при промахе или битом значении
func (s *Service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.Cache == nil {
		return false
	}

	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.Log.Warn("failed to read cache", "error", err, "cache_key", key)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.Log.Warn("failed to decode cached value", "error", err, "cache_key", key)
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.Cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		s.Log.Warn("failed to encode value for cache", "error", err, "cache_key", key)
		return
	}

	if err := s.Cache.Set(ctx, key, string(payload), ttl); err != nil {
		s.Log.Warn("failed to write cache", "error", err, "cache_key", key)
		return
	}
	s.Log.Debug("value cached", "cache_key", key, "ttl", ttl)
}
