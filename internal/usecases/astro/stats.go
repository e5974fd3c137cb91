package astro

import (
	"sort"

	"github.com/admin/astro-core/internal/domain"
)

const (
	dominantLimit     = 3
	tightOrbThreshold = 2.0
)

// бонусы светил при подсчёте доминант
var luminaryBonus = map[domain.Body]int{
	domain.BodySun:  3,
	domain.BodyMoon: 2,
}

// ElementBalance число тел в каждой стихии, все четыре ключа присутствуют
func ElementBalance(positions map[domain.Body]domain.CelestialPosition) map[domain.Element]int {
	balance := make(map[domain.Element]int, len(domain.Elements))
	for _, e := range domain.Elements {
		balance[e] = 0
	}
	for _, pos := range positions {
		if e := pos.Sign.Element(); e != "" {
			balance[e]++
		}
	}
	return balance
}

// ModalityBalance число тел в каждом кресте
func ModalityBalance(positions map[domain.Body]domain.CelestialPosition) map[domain.Modality]int {
	balance := make(map[domain.Modality]int, len(domain.Modalities))
	for _, m := range domain.Modalities {
		balance[m] = 0
	}
	for _, pos := range positions {
		if m := pos.Sign.Modality(); m != "" {
			balance[m]++
		}
	}
	return balance
}

// DominantBodies топ-3 тел по весу: число аспектов, +1 за тугой орбис, бонус светилам.
// При равенстве выше тело, стоящее раньше в domain.Bodies
func DominantBodies(positions map[domain.Body]domain.CelestialPosition, aspectList []domain.Aspect) []domain.DominantBody {
	connections := make(map[domain.Body]int)
	tight := make(map[domain.Body]bool)
	for _, a := range aspectList {
		for _, b := range []domain.Body{a.Body1, a.Body2} {
			connections[b]++
			if a.Orb < tightOrbThreshold {
				tight[b] = true
			}
		}
	}

	scored := make([]domain.DominantBody, 0, len(positions))
	for _, body := range domain.Bodies {
		if _, ok := positions[body]; !ok {
			continue
		}
		score := connections[body] + luminaryBonus[body]
		if tight[body] {
			score++
		}
		scored = append(scored, domain.DominantBody{Body: body, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > dominantLimit {
		scored = scored[:dominantLimit]
	}
	return scored
}
