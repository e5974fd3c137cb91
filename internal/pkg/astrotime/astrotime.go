// Package astrotime перевод гражданского времени в юлианские дни и работа с углами эклиптики
package astrotime

import (
	"math"
	"time"

	"github.com/admin/astro-core/internal/domain"
)

const (
	// J2000 юлианский день эпохи 2000-01-01T12:00:00 UTC
	J2000           = 2451545.0
	DaysPerCentury  = 36525.0
	degreesPerSign  = 30.0
	degreesPerCycle = 360.0
)

// JulianDay юлианский день для момента времени (берётся UTC)
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	hours := float64(u.Hour()) +
		float64(u.Minute())/60 +
		float64(u.Second())/3600 +
		float64(u.Nanosecond())/3.6e12
	return JulianDayFromCivil(u.Year(), int(u.Month()), u.Day(), hours)
}

// JulianDayFromCivil стандартный алгоритм для григорианского календаря.
// Январь и февраль считаются 13 и 14 месяцем предыдущего года
func JulianDayFromCivil(year, month, day int, hours float64) float64 {
	y := float64(year)
	m := float64(month)
	if month <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + float64(day) + b - 1524.5
	return jd + hours/24
}

// TimeFromJulianDay обратное преобразование, точность до миллисекунды
func TimeFromJulianDay(jd float64) time.Time {
	const unixEpochJD = 2440587.5
	ms := math.Round((jd - unixEpochJD) * 86400000)
	return time.UnixMilli(int64(ms)).UTC()
}

// JulianCenturies юлианские столетия от J2000
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// NormalizeDegrees приводит угол к [0, 360)
func NormalizeDegrees(x float64) float64 {
	r := math.Mod(x, degreesPerCycle)
	if r < 0 {
		r += degreesPerCycle
	}
	// -1e-15 + 360 округляется до 360
	if r >= degreesPerCycle || r == 0 {
		return 0
	}
	return r
}

// DegreesToSign знак зодиака и градус внутри знака [0, 30)
func DegreesToSign(longitude float64) (domain.Sign, float64) {
	lon := NormalizeDegrees(longitude)
	idx := int(math.Floor(lon / degreesPerSign))
	if idx > 11 {
		idx = 11
	}
	deg := math.Mod(lon, degreesPerSign)
	if deg >= degreesPerSign {
		deg = 0
	}
	return domain.Signs[idx], deg
}

// AngularDistance кратчайшая дуга между двумя долготами, [0, 180]
func AngularDistance(a, b float64) float64 {
	angle := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	if angle > 180 {
		angle = degreesPerCycle - angle
	}
	return angle
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func Sin(deg float64) float64 { return math.Sin(Radians(deg)) }
func Cos(deg float64) float64 { return math.Cos(Radians(deg)) }
func Tan(deg float64) float64 { return math.Tan(Radians(deg)) }
