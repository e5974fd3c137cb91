// Package lunar фаза и освещённость Луны по синодическому циклу
package lunar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/astrotime"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
)

const (
	// SynodicMonth средний синодический месяц, сутки
	SynodicMonth = 29.530588853
	// ReferenceNewMoonJD опорное новолуние 2000-01-06
	ReferenceNewMoonJD = 2451550.1
	// ScanDays горизонт поиска следующей фазы
	ScanDays = 30
)

// PhasePosition доля синодического цикла [0, 1), 0 = новолуние
func PhasePosition(jd float64) float64 {
	p := math.Mod(jd-ReferenceNewMoonJD, SynodicMonth)
	if p < 0 {
		p += SynodicMonth
	}
	pos := p / SynodicMonth
	if pos >= 1 {
		pos = 0
	}
	return pos
}

// Illumination освещённость в процентах 0..100
func Illumination(jd float64) int {
	p := PhasePosition(jd)
	return int(math.Round((1 - math.Cos(2*math.Pi*p)) * 50))
}

// Phase одна из восьми фаз равной ширины
func Phase(jd float64) domain.LunarPhase {
	idx := int(math.Floor(PhasePosition(jd) * 8))
	if idx > 7 {
		idx = 7
	}
	return domain.LunarPhases[idx]
}

// Data полные лунные данные на момент времени
func Data(t time.Time) domain.LunarPhaseData {
	jd := astrotime.JulianDay(t)
	phase := Phase(jd)
	moon, _ := ephemeris.Position(domain.BodyMoon, jd)
	info := phaseInfo[phase]

	return domain.LunarPhaseData{
		Date:          t.UTC(),
		Phase:         phase,
		Name:          info.Name,
		Symbol:        info.Symbol,
		Illumination:  Illumination(jd),
		PhasePosition: PhasePosition(jd),
		MoonSign:      moon.Sign,
		MoonLongitude: moon.Longitude,
		Guidance:      Guidance(phase),
	}
}

// Calendar лунные данные на days последовательных дней начиная со start
func Calendar(start time.Time, days int) []domain.LunarPhaseData {
	result := make([]domain.LunarPhaseData, 0, days)
	for i := 0; i < days; i++ {
		result = append(result, Data(start.AddDate(0, 0, i)))
	}
	return result
}

// FindNextOccurrence первый день после from, на который приходится фаза.
// Если за ScanDays дней фаза не встретилась, возвращается from + ScanDays
func FindNextOccurrence(target domain.LunarPhase, from time.Time) time.Time {
	for day := 1; day <= ScanDays; day++ {
		candidate := from.AddDate(0, 0, day)
		if Phase(astrotime.JulianDay(candidate)) == target {
			return candidate
		}
	}
	return from.AddDate(0, 0, ScanDays)
}

// ParsePhase принимает full_moon, "Full Moon", full-moon
func ParsePhase(name string) (domain.LunarPhase, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	phase := domain.LunarPhase(normalized)
	if !phase.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPhaseName, name)
	}
	return phase, nil
}

// Name человекочитаемое название фазы
func Name(phase domain.LunarPhase) string {
	return phaseInfo[phase].Name
}

// Symbol эмодзи фазы
func Symbol(phase domain.LunarPhase) string {
	return phaseInfo[phase].Symbol
}
