package lunar

import "github.com/admin/astro-core/internal/domain"

type info struct {
	Name   string
	Symbol string
}

var phaseInfo = map[domain.LunarPhase]info{
	domain.PhaseNewMoon:        {Name: "New Moon", Symbol: "🌑"},
	domain.PhaseWaxingCrescent: {Name: "Waxing Crescent", Symbol: "🌒"},
	domain.PhaseFirstQuarter:   {Name: "First Quarter", Symbol: "🌓"},
	domain.PhaseWaxingGibbous:  {Name: "Waxing Gibbous", Symbol: "🌔"},
	domain.PhaseFullMoon:       {Name: "Full Moon", Symbol: "🌕"},
	domain.PhaseWaningGibbous:  {Name: "Waning Gibbous", Symbol: "🌖"},
	domain.PhaseLastQuarter:    {Name: "Last Quarter", Symbol: "🌗"},
	domain.PhaseWaningCrescent: {Name: "Waning Crescent", Symbol: "🌘"},
}

var guidance = map[domain.LunarPhase]domain.WellnessGuidance{
	domain.PhaseNewMoon: {
		Theme:       "New beginnings and intention setting",
		Practices:   []string{"Write down intentions for the cycle", "Gentle restorative yoga", "Quiet meditation"},
		Avoid:       []string{"Overcommitting", "Big public launches"},
		Affirmation: "I plant the seeds of what I want to grow.",
	},
	domain.PhaseWaxingCrescent: {
		Theme:       "Building momentum",
		Practices:   []string{"Take the first small step on a goal", "Morning walks", "Journaling progress"},
		Avoid:       []string{"Self-doubt", "Comparing your pace to others"},
		Affirmation: "Every small step carries me forward.",
	},
	domain.PhaseFirstQuarter: {
		Theme:       "Action and decision",
		Practices:   []string{"Strength training", "Solve one lingering problem", "Decisive planning"},
		Avoid:       []string{"Procrastination", "Avoiding necessary conversations"},
		Affirmation: "I meet challenges with courage.",
	},
	domain.PhaseWaxingGibbous: {
		Theme:       "Refinement and patience",
		Practices:   []string{"Review and adjust plans", "Nourishing meals", "Breathwork"},
		Avoid:       []string{"Perfectionism", "Rushing results"},
		Affirmation: "I trust the process of becoming.",
	},
	domain.PhaseFullMoon: {
		Theme:       "Culmination and release",
		Practices:   []string{"Gratitude practice", "Moonlight meditation", "Celebrate achievements"},
		Avoid:       []string{"Emotional overreaction", "Overstimulation before sleep"},
		Affirmation: "I honor how far I have come.",
	},
	domain.PhaseWaningGibbous: {
		Theme:       "Sharing and gratitude",
		Practices:   []string{"Teach or share what you learned", "Acts of kindness", "Slow stretching"},
		Avoid:       []string{"Holding on to resentment", "Overindulgence"},
		Affirmation: "I give freely from what I have received.",
	},
	domain.PhaseLastQuarter: {
		Theme:       "Letting go",
		Practices:   []string{"Declutter your space", "Forgiveness journaling", "Restorative rest"},
		Avoid:       []string{"Starting major projects", "Clinging to what is finished"},
		Affirmation: "I release what no longer serves me.",
	},
	domain.PhaseWaningCrescent: {
		Theme:       "Rest and reflection",
		Practices:   []string{"Extra sleep", "Solitude", "Reflect on the past cycle"},
		Avoid:       []string{"Burnout", "Packed schedules"},
		Affirmation: "Rest is part of my growth.",
	},
}

// Guidance рекомендации на фазу. Срезы копируются, таблица не изменяется снаружи
func Guidance(phase domain.LunarPhase) domain.WellnessGuidance {
	g := guidance[phase]
	return domain.WellnessGuidance{
		Theme:       g.Theme,
		Practices:   append([]string(nil), g.Practices...),
		Avoid:       append([]string(nil), g.Avoid...),
		Affirmation: g.Affirmation,
	}
}
