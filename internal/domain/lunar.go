package domain

import "time"

// LunarPhase одна из восьми фаз Луны
type LunarPhase string

const (
	PhaseNewMoon        LunarPhase = "new_moon"
	PhaseWaxingCrescent LunarPhase = "waxing_crescent"
	PhaseFirstQuarter   LunarPhase = "first_quarter"
	PhaseWaxingGibbous  LunarPhase = "waxing_gibbous"
	PhaseFullMoon       LunarPhase = "full_moon"
	PhaseWaningGibbous  LunarPhase = "waning_gibbous"
	PhaseLastQuarter    LunarPhase = "last_quarter"
	PhaseWaningCrescent LunarPhase = "waning_crescent"
)

// LunarPhases порядок фаз от новолуния, каждая занимает 1/8 синодического месяца
var LunarPhases = [8]LunarPhase{
	PhaseNewMoon,
	PhaseWaxingCrescent,
	PhaseFirstQuarter,
	PhaseWaxingGibbous,
	PhaseFullMoon,
	PhaseWaningGibbous,
	PhaseLastQuarter,
	PhaseWaningCrescent,
}

func (p LunarPhase) IsValid() bool {
	for _, phase := range LunarPhases {
		if phase == p {
			return true
		}
	}
	return false
}

// WellnessGuidance рекомендации на фазу
type WellnessGuidance struct {
	Theme       string   `json:"theme"`
	Practices   []string `json:"practices"`
	Avoid       []string `json:"avoid"`
	Affirmation string   `json:"affirmation"`
}

// LunarPhaseData лунные данные на дату. Считаются только из даты, не сохраняются
type LunarPhaseData struct {
	Date          time.Time        `json:"date"`
	Phase         LunarPhase       `json:"phase"`
	Name          string           `json:"name"`
	Symbol        string           `json:"symbol"`
	Illumination  int              `json:"illumination"`
	PhasePosition float64          `json:"phase_position"`
	MoonSign      Sign             `json:"moon_sign"`
	MoonLongitude float64          `json:"moon_longitude"`
	Guidance      WellnessGuidance `json:"guidance"`
}

// NextPhase результат поиска ближайшей фазы
type NextPhase struct {
	Phase   LunarPhase     `json:"phase"`
	Date    time.Time      `json:"date"`
	Details LunarPhaseData `json:"details"`
}
