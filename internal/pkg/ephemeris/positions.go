// Package ephemeris приближённые положения тел Солнечной системы, сидерическое время и дома.
// Точность рассчитана на астрологическую интерпретацию (доли градуса), а не на навигацию
package ephemeris

import (
	"math"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/astrotime"
)

// средние суточные скорости, градусов в сутки
const (
	sunSpeed       = 0.9856
	moonSpeed      = 13.176
	northNodeSpeed = -0.0529
	chironSpeed    = 360.0 / (50.42 * 365.25)
)

// Хирон: эпоха 2020-01-01T00:00Z и средняя долгота на неё
const (
	chironEpochJD  = 2458849.5
	chironEpochLon = 2.3
)

// orbitalElements средние элементы орбиты на J2000 и их вековые изменения
type orbitalElements struct {
	SemiMajorAxis float64 // а.е.
	Eccentricity  float64
	Inclination   float64 // градусы
	L0, L1        float64 // средняя долгота: L0 + L1*T
	P0, P1        float64 // долгота перигелия: P0 + P1*T
	Node          float64 // долгота восходящего узла
	PeriodDays    float64
	Precision     domain.PrecisionTier
}

var planets = map[domain.Body]orbitalElements{
	domain.BodyMercury: {
		SemiMajorAxis: 0.38709927, Eccentricity: 0.20563593, Inclination: 7.00497902,
		L0: 252.25032350, L1: 149472.67411175, P0: 77.45779628, P1: 0.16047689,
		Node: 48.33076593, PeriodDays: 87.969, Precision: domain.PrecisionPrecise,
	},
	domain.BodyVenus: {
		SemiMajorAxis: 0.72333566, Eccentricity: 0.00677672, Inclination: 3.39467605,
		L0: 181.97909950, L1: 58517.81538729, P0: 131.60246718, P1: 0.00268329,
		Node: 76.67984255, PeriodDays: 224.701, Precision: domain.PrecisionPrecise,
	},
	domain.BodyMars: {
		SemiMajorAxis: 1.52371034, Eccentricity: 0.09339410, Inclination: 1.84969142,
		L0: -4.55343205, L1: 19140.30268499, P0: -23.94362959, P1: 0.44441088,
		Node: 49.55953891, PeriodDays: 686.980, Precision: domain.PrecisionPrecise,
	},
	domain.BodyJupiter: {
		SemiMajorAxis: 5.20288700, Eccentricity: 0.04838624, Inclination: 1.30439695,
		L0: 34.39644051, L1: 3034.74612775, P0: 14.72847983, P1: 0.21252668,
		Node: 100.47390909, PeriodDays: 4332.59, Precision: domain.PrecisionPrecise,
	},
	domain.BodySaturn: {
		SemiMajorAxis: 9.53667594, Eccentricity: 0.05386179, Inclination: 2.48599187,
		L0: 49.95424423, L1: 1222.49362201, P0: 92.59887831, P1: -0.41897216,
		Node: 113.66242448, PeriodDays: 10759.22, Precision: domain.PrecisionPrecise,
	},
	domain.BodyUranus: {
		SemiMajorAxis: 19.18916464, Eccentricity: 0.04725744, Inclination: 0.77263783,
		L0: 313.23810451, L1: 428.48202785, P0: 170.95427630, P1: 0.40805281,
		Node: 74.01692503, PeriodDays: 30688.5, Precision: domain.PrecisionApproximate,
	},
	domain.BodyNeptune: {
		SemiMajorAxis: 30.06992276, Eccentricity: 0.00859048, Inclination: 1.77004347,
		L0: -55.12002969, L1: 218.45945325, P0: 44.96476227, P1: -0.32241464,
		Node: 131.78422574, PeriodDays: 60182, Precision: domain.PrecisionApproximate,
	},
	domain.BodyPluto: {
		SemiMajorAxis: 39.48211675, Eccentricity: 0.24882730, Inclination: 17.14001206,
		L0: 238.92903833, L1: 145.20780515, P0: 224.06891629, P1: -0.04062942,
		Node: 110.30393684, PeriodDays: 90560, Precision: domain.PrecisionApproximate,
	},
}

// PrecisionOf уровень точности, с которым считается тело
func PrecisionOf(body domain.Body) domain.PrecisionTier {
	switch body {
	case domain.BodySun, domain.BodyMoon, domain.BodyNorthNode:
		return domain.PrecisionPrecise
	case domain.BodyChiron:
		return domain.PrecisionApproximate
	}
	if el, ok := planets[body]; ok {
		return el.Precision
	}
	return domain.PrecisionApproximate
}

// Positions положения всех 12 тел на юлианский день
func Positions(jd float64) map[domain.Body]domain.CelestialPosition {
	result := make(map[domain.Body]domain.CelestialPosition, len(domain.Bodies))
	for _, body := range domain.Bodies {
		pos, _ := Position(body, jd)
		result[body] = pos
	}
	return result
}

// OrderedPositions то же, что Positions, но в порядке domain.Bodies
func OrderedPositions(jd float64) []domain.CelestialPosition {
	result := make([]domain.CelestialPosition, 0, len(domain.Bodies))
	for _, body := range domain.Bodies {
		pos, _ := Position(body, jd)
		result = append(result, pos)
	}
	return result
}

// Position положение одного тела. false для неизвестного тела
func Position(body domain.Body, jd float64) (domain.CelestialPosition, bool) {
	t := astrotime.JulianCenturies(jd)

	switch body {
	case domain.BodySun:
		return newPosition(body, SunLongitude(t), nil, sunSpeed, false), true
	case domain.BodyMoon:
		lat := MoonLatitude(t)
		return newPosition(body, MoonLongitude(t), &lat, moonSpeed, false), true
	case domain.BodyNorthNode:
		return newPosition(body, NorthNodeLongitude(t), nil, northNodeSpeed, true), true
	case domain.BodyChiron:
		return newPosition(body, ChironLongitude(jd), nil, chironSpeed, false), true
	}

	el, ok := planets[body]
	if !ok {
		return domain.CelestialPosition{}, false
	}
	lon, lat := el.heliocentric(t)
	return newPosition(body, lon, &lat, 360/el.PeriodDays, false), true
}

func newPosition(body domain.Body, lon float64, lat *float64, speed float64, retrograde bool) domain.CelestialPosition {
	lon = astrotime.NormalizeDegrees(lon)
	sign, deg := astrotime.DegreesToSign(lon)
	return domain.CelestialPosition{
		Body:         body,
		Longitude:    lon,
		Latitude:     lat,
		Speed:        &speed,
		Retrograde:   retrograde,
		Sign:         sign,
		DegreeInSign: deg,
		Precision:    PrecisionOf(body),
	}
}

// SunLongitude средняя долгота + уравнение центра (три члена ряда)
func SunLongitude(t float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t

	c := (1.914602-0.004817*t-0.000014*t*t)*astrotime.Sin(m) +
		(0.019993-0.000101*t)*astrotime.Sin(2*m) +
		0.000289*astrotime.Sin(3*m)

	return astrotime.NormalizeDegrees(l0 + c)
}

// lunarArguments фундаментальные аргументы лунной теории
type lunarArguments struct {
	L  float64 // средняя долгота Луны
	D  float64 // средняя элонгация от Солнца
	M  float64 // средняя аномалия Солнца
	Mp float64 // средняя аномалия Луны
	F  float64 // аргумент широты
}

func moonArguments(t float64) lunarArguments {
	return lunarArguments{
		L:  218.3164477 + 481267.88123421*t,
		D:  297.8501921 + 445267.1114034*t,
		M:  357.5291092 + 35999.0502909*t,
		Mp: 134.9633964 + 477198.8675055*t,
		F:  93.2720950 + 483202.0175233*t,
	}
}

// MoonLongitude средняя долгота + шесть главных периодических членов
func MoonLongitude(t float64) float64 {
	a := moonArguments(t)
	lon := a.L +
		6.289*astrotime.Sin(a.Mp) +
		1.274*astrotime.Sin(2*a.D-a.Mp) +
		0.658*astrotime.Sin(2*a.D) +
		0.214*astrotime.Sin(2*a.Mp) -
		0.186*astrotime.Sin(a.M) -
		0.114*astrotime.Sin(2*a.F)
	return astrotime.NormalizeDegrees(lon)
}

// MoonLatitude главный член эклиптической широты Луны
func MoonLatitude(t float64) float64 {
	return 5.128 * astrotime.Sin(moonArguments(t).F)
}

// NorthNodeLongitude средний восходящий узел Луны
func NorthNodeLongitude(t float64) float64 {
	return astrotime.NormalizeDegrees(125.04452 - 1934.136261*t)
}

// ChironLongitude линейная средняя долгота Хирона. Это приближение, а не решение орбиты:
// из-за эксцентриситета ~0.38 ошибка доходит до десятков градусов вдали от эпохи
func ChironLongitude(jd float64) float64 {
	return astrotime.NormalizeDegrees(chironEpochLon + chironSpeed*(jd-chironEpochJD))
}

// heliocentric гелиоцентрическая долгота и широта по упрощённой кеплеровой орбите
func (el orbitalElements) heliocentric(t float64) (lon, lat float64) {
	meanLon := el.L0 + el.L1*t
	perihelion := el.P0 + el.P1*t

	m := astrotime.Radians(astrotime.NormalizeDegrees(meanLon - perihelion))
	e := el.Eccentricity

	// один шаг вместо итераций Ньютона
	ecc := m + e*math.Sin(m)
	nu := 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(ecc/2), math.Sqrt(1-e)*math.Cos(ecc/2))

	lon = astrotime.NormalizeDegrees(astrotime.Degrees(nu) + perihelion)

	// аргумент широты отсчитывается от узла
	u := lon - el.Node
	lat = astrotime.Degrees(math.Asin(astrotime.Sin(el.Inclination) * astrotime.Sin(u)))
	return lon, lat
}
