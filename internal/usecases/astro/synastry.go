package astro

import (
	"context"
	"fmt"
	"math"

	"github.com/admin/astro-core/internal/domain"
	"github.com/google/uuid"
)

// тела, по аспектам которых считаются тематические оценки
var (
	emotionalBodies     = []domain.Body{domain.BodyMoon, domain.BodyVenus}
	communicationBodies = []domain.Body{domain.BodyMercury}
	passionBodies       = []domain.Body{domain.BodyMars, domain.BodyVenus}
)

// Synastry аспекты между всеми телами двух карт и оценка совместимости
func (s *Service) Synastry(a, b *domain.BirthChart) domain.SynastryResult {
	aspectList := s.Aspects.Cross(a.Positions, b.Positions)
	return domain.SynastryResult{
		Aspects:       aspectList,
		Compatibility: Compatibility(aspectList),
	}
}

// Compatibility оценка h/(h+c+1)*100. Тематические оценки считаются тем же способом
// по аспектам, затрагивающим тела темы; если таких нет, берётся общая оценка
func Compatibility(aspectList []domain.Aspect) domain.Compatibility {
	h, c := countNatures(aspectList)
	overall := score(h, c)

	return domain.Compatibility{
		Overall:       overall,
		Emotional:     themedScore(aspectList, emotionalBodies, overall),
		Communication: themedScore(aspectList, communicationBodies, overall),
		Passion:       themedScore(aspectList, passionBodies, overall),
		Harmonious:    h,
		Challenging:   c,
	}
}

func countNatures(aspectList []domain.Aspect) (harmonious, challenging int) {
	for _, a := range aspectList {
		switch a.Kind.Nature {
		case domain.NatureHarmonious:
			harmonious++
		case domain.NatureChallenging:
			challenging++
		}
	}
	return harmonious, challenging
}

func score(harmonious, challenging int) int {
	return int(math.Round(float64(harmonious) / float64(harmonious+challenging+1) * 100))
}

func themedScore(aspectList []domain.Aspect, bodies []domain.Body, fallback int) int {
	var themed []domain.Aspect
	for _, a := range aspectList {
		for _, b := range bodies {
			if a.Involves(b) {
				themed = append(themed, a)
				break
			}
		}
	}

	h, c := countNatures(themed)
	if h+c == 0 {
		return fallback
	}
	return score(h, c)
}

// GetSynastry синастрия двух сохранённых карт
func (s *Service) GetSynastry(ctx context.Context, userA, userB uuid.UUID) (*domain.SynastryResult, error) {
	chartA, err := s.GetBirthChart(ctx, userA)
	if err != nil {
		return nil, fmt.Errorf("chart of user %s: %w", userA, err)
	}

	chartB, err := s.GetBirthChart(ctx, userB)
	if err != nil {
		return nil, fmt.Errorf("chart of user %s: %w", userB, err)
	}

	result := s.Synastry(chartA, chartB)
	s.Log.Debug("synastry calculated",
		"user_a", userA,
		"user_b", userB,
		"aspects", len(result.Aspects),
		"overall", result.Compatibility.Overall,
	)
	return &result, nil
}
