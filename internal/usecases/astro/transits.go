package astro

import (
	"context"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/astrotime"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
	"github.com/google/uuid"
)

// Transits сравнивает положения на момент at с натальными, каждое тело только с самим собой
func (s *Service) Transits(natal *domain.BirthChart, at time.Time) []domain.TransitSnapshot {
	current := ephemeris.Positions(astrotime.JulianDay(at))

	snapshots := make([]domain.TransitSnapshot, 0, len(domain.Bodies))
	for _, body := range domain.Bodies {
		now, ok := current[body]
		if !ok {
			continue
		}
		natalPos, ok := natal.Positions[body]
		if !ok {
			continue
		}

		snapshots = append(snapshots, domain.TransitSnapshot{
			Body:    body,
			Current: now,
			Natal:   natalPos,
			Aspect:  s.Aspects.Match(now, natalPos),
		})
	}
	return snapshots
}

// GetTransits транзиты к сохранённой карте. Пустая дата = сейчас
func (s *Service) GetTransits(ctx context.Context, userID uuid.UUID, date string) ([]domain.TransitSnapshot, error) {
	at, err := ParseDate(date, s.Now().UTC())
	if err != nil {
		return nil, err
	}

	natal, err := s.GetBirthChart(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshots := s.Transits(natal, at)

	active := 0
	for _, snap := range snapshots {
		if snap.Aspect != nil {
			active++
		}
	}
	s.Log.Debug("transits calculated", "user_id", userID, "at", at, "active_aspects", active)

	return snapshots, nil
}
