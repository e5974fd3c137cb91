package astro

import (
	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
	"github.com/admin/astro-core/internal/usecases/astro/texts"
)

var signRulers = map[domain.Sign]domain.Body{
	domain.SignAries:       domain.BodyMars,
	domain.SignTaurus:      domain.BodyVenus,
	domain.SignGemini:      domain.BodyMercury,
	domain.SignCancer:      domain.BodyMoon,
	domain.SignLeo:         domain.BodySun,
	domain.SignVirgo:       domain.BodyMercury,
	domain.SignLibra:       domain.BodyVenus,
	domain.SignScorpio:     domain.BodyPluto,
	domain.SignSagittarius: domain.BodyJupiter,
	domain.SignCapricorn:   domain.BodySaturn,
	domain.SignAquarius:    domain.BodyUranus,
	domain.SignPisces:      domain.BodyNeptune,
}

var signDateRanges = [12]string{
	"Mar 21 - Apr 19",
	"Apr 20 - May 20",
	"May 21 - Jun 20",
	"Jun 21 - Jul 22",
	"Jul 23 - Aug 22",
	"Aug 23 - Sep 22",
	"Sep 23 - Oct 22",
	"Oct 23 - Nov 21",
	"Nov 22 - Dec 21",
	"Dec 22 - Jan 19",
	"Jan 20 - Feb 18",
	"Feb 19 - Mar 20",
}

// ZodiacSigns справочник знаков в порядке от Овна
func ZodiacSigns() []domain.ZodiacSignInfo {
	out := make([]domain.ZodiacSignInfo, 0, len(domain.Signs))
	for i, sign := range domain.Signs {
		out = append(out, domain.ZodiacSignInfo{
			Sign:           sign,
			Name:           texts.SignName(sign),
			Symbol:         texts.SignSymbol(sign),
			Element:        sign.Element(),
			Modality:       sign.Modality(),
			Ruler:          signRulers[sign],
			DateRange:      signDateRanges[i],
			StartLongitude: float64(i * 30),
			Keywords:       texts.SignKeywords(sign),
		})
	}
	return out
}

// Planets справочник отслеживаемых тел с уровнем точности расчёта
func Planets() []domain.PlanetInfo {
	out := make([]domain.PlanetInfo, 0, len(domain.Bodies))
	for _, body := range domain.Bodies {
		out = append(out, domain.PlanetInfo{
			Body:      body,
			Name:      texts.BodyName(body),
			Symbol:    texts.BodySymbol(body),
			Meaning:   texts.BodyMeaning(body),
			Precision: ephemeris.PrecisionOf(body),
		})
	}
	return out
}
