// Package aspects поиск угловых отношений между телами в пределах орбиса
package aspects

import (
	"math"
	"sort"

	"github.com/admin/astro-core/internal/domain"
)

// Matcher проверяет типы аспектов по возрастанию максимального орбиса.
// При равных орбисах сохраняется исходный порядок, первый подходящий тип выигрывает
type Matcher struct {
	kinds []domain.AspectKind
}

// NewMatcher матчер с собственной таблицей орбисов
func NewMatcher(kinds []domain.AspectKind) *Matcher {
	sorted := make([]domain.AspectKind, len(kinds))
	copy(sorted, kinds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MaxOrb < sorted[j].MaxOrb
	})
	return &Matcher{kinds: sorted}
}

// Default матчер с семью каноническими аспектами
func Default() *Matcher {
	return NewMatcher(domain.AspectKinds)
}

// Kinds порядок, в котором проверяются типы
func (m *Matcher) Kinds() []domain.AspectKind {
	out := make([]domain.AspectKind, len(m.kinds))
	copy(out, m.kinds)
	return out
}

// MatchAngle тип аспекта для углового расстояния [0, 180]
func (m *Matcher) MatchAngle(angle float64) (domain.AspectKind, float64, bool) {
	for _, kind := range m.kinds {
		orb := math.Abs(angle - kind.Angle)
		if orb <= kind.MaxOrb {
			return kind, orb, true
		}
	}
	return domain.AspectKind{}, 0, false
}

// Match аспект между двумя положениями, nil если ни один тип не попал в орбис
func (m *Matcher) Match(a, b domain.CelestialPosition) *domain.Aspect {
	angle := math.Abs(a.Longitude - b.Longitude)
	if angle > 180 {
		angle = 360 - angle
	}

	kind, orb, ok := m.MatchAngle(angle)
	if !ok {
		return nil
	}

	return &domain.Aspect{
		Body1:    a.Body,
		Body2:    b.Body,
		Kind:     kind,
		Angle:    angle,
		Orb:      orb,
		Applying: IsApplying(a, b),
	}
}

// IsApplying сходящийся ли аспект. Без известных скоростей, при равных скоростях
// (расстояние не меняется) и при совпадающих долготах считаем сходящимся.
// Результат не зависит от порядка аргументов
func IsApplying(a, b domain.CelestialPosition) bool {
	if a.Speed == nil || b.Speed == nil {
		return true
	}
	if *a.Speed == *b.Speed || a.Longitude == b.Longitude {
		return true
	}
	return (*a.Speed > *b.Speed) == (a.Longitude < b.Longitude)
}

// Find все аспекты между неупорядоченными парами разных тел одной карты.
// Пары перебираются в порядке domain.Bodies, тела не из списка идут в конце по имени
func (m *Matcher) Find(positions map[domain.Body]domain.CelestialPosition) []domain.Aspect {
	ordered := orderedPositions(positions)

	result := make([]domain.Aspect, 0)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if aspect := m.Match(ordered[i], ordered[j]); aspect != nil {
				result = append(result, *aspect)
			}
		}
	}
	return result
}

// Cross аспекты по полному декартову произведению тел двух карт (синастрия)
func (m *Matcher) Cross(a, b map[domain.Body]domain.CelestialPosition) []domain.Aspect {
	left := orderedPositions(a)
	right := orderedPositions(b)

	result := make([]domain.Aspect, 0)
	for _, pa := range left {
		for _, pb := range right {
			if aspect := m.Match(pa, pb); aspect != nil {
				result = append(result, *aspect)
			}
		}
	}
	return result
}

// Find аспекты с канонической таблицей
func Find(positions map[domain.Body]domain.CelestialPosition) []domain.Aspect {
	return Default().Find(positions)
}

func orderedPositions(positions map[domain.Body]domain.CelestialPosition) []domain.CelestialPosition {
	ordered := make([]domain.CelestialPosition, 0, len(positions))
	for _, body := range domain.Bodies {
		if pos, ok := positions[body]; ok {
			ordered = append(ordered, pos)
		}
	}

	if len(ordered) == len(positions) {
		return ordered
	}

	var extra []domain.Body
	for body := range positions {
		if !body.IsValid() {
			extra = append(extra, body)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, body := range extra {
		ordered = append(ordered, positions[body])
	}
	return ordered
}
