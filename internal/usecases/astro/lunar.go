package astro

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/lunar"
	"github.com/admin/astro-core/internal/pkg/metrics"
)

const (
	MinCalendarDays = 1
	MaxCalendarDays = 365
)

func lunarCalendarCacheKey(start time.Time, days int) string {
	return fmt.Sprintf("astro:lunar:calendar:%s:%d", start.Format(dateLayout), days)
}

// GetLunarData лунные данные на дату. Пустая дата = сейчас
func (s *Service) GetLunarData(_ context.Context, date string) (*domain.LunarPhaseData, error) {
	at, err := ParseDate(date, s.Now().UTC())
	if err != nil {
		return nil, err
	}
	data := lunar.Data(at)
	return &data, nil
}

// GetLunarCalendar данные на days дней начиная со start (полночь UTC).
// days вне [1, 365] или нечитаемая дата дают domain.ErrInvalidDateRange
func (s *Service) GetLunarCalendar(ctx context.Context, start string, days int) ([]domain.LunarPhaseData, error) {
	if days < MinCalendarDays || days > MaxCalendarDays {
		return nil, fmt.Errorf("%w: days must be between %d and %d, got %d",
			domain.ErrInvalidDateRange, MinCalendarDays, MaxCalendarDays, days)
	}

	from, err := ParseDate(start, s.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", domain.ErrInvalidDateRange, start)
	}
	from = truncateDay(from)

	key := lunarCalendarCacheKey(from, days)
	var cached []domain.LunarPhaseData
	if s.Cache != nil {
		hit := s.cacheGet(ctx, key, &cached)
		metrics.RecordCacheLookup("lunar_calendar", hit)
		if hit {
			return cached, nil
		}
	}

	calendar := lunar.Calendar(from, days)
	s.cacheSet(ctx, key, calendar, s.Cfg.LunarCacheTTL)
	return calendar, nil
}

// WarmLunarCalendar заранее кладёт календарь в кэш (для фоновой задачи)
func (s *Service) WarmLunarCalendar(ctx context.Context, start time.Time, days int) error {
	if s.Cache == nil {
		return nil
	}
	if days < MinCalendarDays || days > MaxCalendarDays {
		return fmt.Errorf("%w: days=%d", domain.ErrInvalidDateRange, days)
	}

	from := truncateDay(start)
	payload, err := json.Marshal(lunar.Calendar(from, days))
	if err != nil {
		return fmt.Errorf("failed to encode lunar calendar: %w", err)
	}

	key := lunarCalendarCacheKey(from, days)
	if err := s.Cache.Set(ctx, key, string(payload), s.Cfg.LunarCacheTTL); err != nil {
		return fmt.Errorf("failed to cache lunar calendar: %w", err)
	}

	s.Log.Debug("lunar calendar warmed", "cache_key", key)
	return nil
}

// FindNextPhase ближайший день после from с указанной фазой. Пустая from = сейчас
func (s *Service) FindNextPhase(_ context.Context, name string, from string) (*domain.NextPhase, error) {
	phase, err := lunar.ParsePhase(name)
	if err != nil {
		return nil, err
	}

	start, err := ParseDate(from, s.Now().UTC())
	if err != nil {
		return nil, err
	}

	date := lunar.FindNextOccurrence(phase, start)
	return &domain.NextPhase{
		Phase:   phase,
		Date:    date,
		Details: lunar.Data(date),
	}, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
