package ephemeris

import (
	"fmt"
	"math"

	"github.com/admin/astro-core/internal/pkg/astrotime"
)

const (
	HouseSystemWholeSign = "whole_sign"
	HouseSystemEqual     = "equal"
)

// HouseSystem стратегия расчёта куспидов. Позволяет заменить упрощённую систему домов
// (например на Плацидус) без изменений в остальном движке
type HouseSystem interface {
	Name() string
	ComputeCusps(ascendant, latitude, obliquity float64) [12]float64
}

// WholeSign первый дом начинается с границы знака, в котором стоит Асцендент
type WholeSign struct{}

func (WholeSign) Name() string { return HouseSystemWholeSign }

func (WholeSign) ComputeCusps(ascendant, _, _ float64) [12]float64 {
	first := math.Floor(astrotime.NormalizeDegrees(ascendant)/30) * 30
	return stepCusps(first)
}

// EqualHouse первый куспид ровно на Асценденте, далее через 30°
type EqualHouse struct{}

func (EqualHouse) Name() string { return HouseSystemEqual }

func (EqualHouse) ComputeCusps(ascendant, _, _ float64) [12]float64 {
	return stepCusps(astrotime.NormalizeDegrees(ascendant))
}

func stepCusps(first float64) [12]float64 {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = astrotime.NormalizeDegrees(first + float64(i)*30)
	}
	return cusps
}

// NewHouseSystem система домов по имени из конфига
func NewHouseSystem(name string) (HouseSystem, error) {
	switch name {
	case "", HouseSystemWholeSign:
		return WholeSign{}, nil
	case HouseSystemEqual:
		return EqualHouse{}, nil
	default:
		return nil, fmt.Errorf("unsupported house system: %s", name)
	}
}

// Houses углы карты и куспиды
type Houses struct {
	System        string
	Ascendant     float64
	Midheaven     float64
	LocalSidereal float64
	Obliquity     float64
	Cusps         [12]float64
}

// GreenwichSiderealTime среднее звёздное время в Гринвиче, градусы
func GreenwichSiderealTime(jd float64) float64 {
	t := astrotime.JulianCenturies(jd)
	gmst := 280.46061837 +
		360.98564736629*(jd-astrotime.J2000) +
		0.000387933*t*t -
		t*t*t/38710000
	return astrotime.NormalizeDegrees(gmst)
}

// LocalSiderealTime местное звёздное время, долгота восточная положительная
func LocalSiderealTime(jd, longitude float64) float64 {
	return astrotime.NormalizeDegrees(GreenwichSiderealTime(jd) + longitude)
}

// Obliquity наклон эклиптики (линейное приближение)
func Obliquity(t float64) float64 {
	return 23.439291 - 0.0130042*t
}

// Midheaven долгота MC
func Midheaven(lst, obliquity float64) float64 {
	mc := math.Atan2(astrotime.Sin(lst), astrotime.Cos(lst)*astrotime.Cos(obliquity))
	return astrotime.NormalizeDegrees(astrotime.Degrees(mc))
}

// Ascendant восходящая точка эклиптики на восточном горизонте
//
// Числитель atan2 берётся как cos(LST), а не -cos(LST): с минусом формула даёт
// десцендент (сдвиг на 180°). Проверка: LST=0 на экваторе -> 90°, LST=90 -> 180°
func Ascendant(lst, obliquity, latitude float64) float64 {
	y := astrotime.Cos(lst)
	x := -(astrotime.Sin(lst)*astrotime.Cos(obliquity) + astrotime.Tan(latitude)*astrotime.Sin(obliquity))
	return astrotime.NormalizeDegrees(astrotime.Degrees(math.Atan2(y, x)))
}

// CalculateHouses Асцендент, MC и куспиды для момента и места
func CalculateHouses(jd, latitude, longitude float64, system HouseSystem) Houses {
	if system == nil {
		system = WholeSign{}
	}

	t := astrotime.JulianCenturies(jd)
	lst := LocalSiderealTime(jd, longitude)
	eps := Obliquity(t)
	asc := Ascendant(lst, eps, latitude)

	return Houses{
		System:        system.Name(),
		Ascendant:     asc,
		Midheaven:     Midheaven(lst, eps),
		LocalSidereal: lst,
		Obliquity:     eps,
		Cusps:         system.ComputeCusps(asc, latitude, eps),
	}
}
