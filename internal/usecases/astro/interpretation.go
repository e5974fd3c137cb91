package astro

import (
	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/usecases/astro/texts"
)

// Interpret текстовые трактовки по телам, аспектам и домам карты
func Interpret(chart *domain.BirthChart) domain.Interpretation {
	out := domain.Interpretation{
		Bodies:  make(map[domain.Body]string, len(chart.Positions)),
		Aspects: make([]string, 0, len(chart.Aspects)),
	}

	for body, pos := range chart.Positions {
		out.Bodies[body] = texts.FormatBodyInSign(pos)
	}

	for _, a := range chart.Aspects {
		out.Aspects = append(out.Aspects, texts.FormatAspect(a))
	}

	if len(chart.Houses) > 0 {
		out.Houses = make([]string, 0, len(chart.Houses))
		for _, cusp := range chart.Houses {
			if line := texts.FormatHouse(cusp); line != "" {
				out.Houses = append(out.Houses, line)
			}
		}
	}

	return out
}
