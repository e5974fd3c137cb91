package texts

import (
	"fmt"
	"strings"

	"github.com/admin/astro-core/internal/domain"
)

const (
	BodyInSign         = "%s in %s (%.1f°): your %s is expressed in a %s way."
	RetrogradeSuffix   = " Retrograde motion turns this energy inward."
	ApproximateSuffix  = " This position is approximate, read it as a broad theme."
	AspectLine         = "%s %s %s (orb %.1f°, %s): %s"
	HouseLine          = "House %d begins in %s: %s are approached in a %s manner."
	AspectApplying     = "applying"
	AspectSeparating   = "separating"
	UnknownInterpreted = "%s in %s."
)

var bodyNames = map[domain.Body]string{
	domain.BodySun:       "Sun",
	domain.BodyMoon:      "Moon",
	domain.BodyMercury:   "Mercury",
	domain.BodyVenus:     "Venus",
	domain.BodyMars:      "Mars",
	domain.BodyJupiter:   "Jupiter",
	domain.BodySaturn:    "Saturn",
	domain.BodyUranus:    "Uranus",
	domain.BodyNeptune:   "Neptune",
	domain.BodyPluto:     "Pluto",
	domain.BodyNorthNode: "North Node",
	domain.BodyChiron:    "Chiron",
}

var bodySymbols = map[domain.Body]string{
	domain.BodySun:       "☉",
	domain.BodyMoon:      "☽",
	domain.BodyMercury:   "☿",
	domain.BodyVenus:     "♀",
	domain.BodyMars:      "♂",
	domain.BodyJupiter:   "♃",
	domain.BodySaturn:    "♄",
	domain.BodyUranus:    "♅",
	domain.BodyNeptune:   "♆",
	domain.BodyPluto:     "♇",
	domain.BodyNorthNode: "☊",
	domain.BodyChiron:    "⚷",
}

var bodyMeanings = map[domain.Body]string{
	domain.BodySun:       "core identity and vitality",
	domain.BodyMoon:      "emotional nature and instincts",
	domain.BodyMercury:   "thinking and communication",
	domain.BodyVenus:     "love, values and pleasure",
	domain.BodyMars:      "drive and assertion",
	domain.BodyJupiter:   "growth and optimism",
	domain.BodySaturn:    "discipline and responsibility",
	domain.BodyUranus:    "independence and change",
	domain.BodyNeptune:   "imagination and intuition",
	domain.BodyPluto:     "transformation and power",
	domain.BodyNorthNode: "life direction",
	domain.BodyChiron:    "deepest wound and healing gift",
}

var signNames = map[domain.Sign]string{
	domain.SignAries:       "Aries",
	domain.SignTaurus:      "Taurus",
	domain.SignGemini:      "Gemini",
	domain.SignCancer:      "Cancer",
	domain.SignLeo:         "Leo",
	domain.SignVirgo:       "Virgo",
	domain.SignLibra:       "Libra",
	domain.SignScorpio:     "Scorpio",
	domain.SignSagittarius: "Sagittarius",
	domain.SignCapricorn:   "Capricorn",
	domain.SignAquarius:    "Aquarius",
	domain.SignPisces:      "Pisces",
}

var signSymbols = map[domain.Sign]string{
	domain.SignAries:       "♈",
	domain.SignTaurus:      "♉",
	domain.SignGemini:      "♊",
	domain.SignCancer:      "♋",
	domain.SignLeo:         "♌",
	domain.SignVirgo:       "♍",
	domain.SignLibra:       "♎",
	domain.SignScorpio:     "♏",
	domain.SignSagittarius: "♐",
	domain.SignCapricorn:   "♑",
	domain.SignAquarius:    "♒",
	domain.SignPisces:      "♓",
}

var signStyles = map[domain.Sign]string{
	domain.SignAries:       "bold, pioneering",
	domain.SignTaurus:      "steady, sensual",
	domain.SignGemini:      "curious, versatile",
	domain.SignCancer:      "nurturing, protective",
	domain.SignLeo:         "warm, expressive",
	domain.SignVirgo:       "precise, helpful",
	domain.SignLibra:       "harmonious, diplomatic",
	domain.SignScorpio:     "intense, probing",
	domain.SignSagittarius: "adventurous, philosophical",
	domain.SignCapricorn:   "ambitious, structured",
	domain.SignAquarius:    "inventive, unconventional",
	domain.SignPisces:      "compassionate, dreamy",
}

var signKeywords = map[domain.Sign][]string{
	domain.SignAries:       {"initiative", "courage", "energy"},
	domain.SignTaurus:      {"stability", "patience", "comfort"},
	domain.SignGemini:      {"communication", "curiosity", "adaptability"},
	domain.SignCancer:      {"home", "emotion", "care"},
	domain.SignLeo:         {"creativity", "pride", "generosity"},
	domain.SignVirgo:       {"service", "analysis", "health"},
	domain.SignLibra:       {"balance", "partnership", "beauty"},
	domain.SignScorpio:     {"depth", "transformation", "intimacy"},
	domain.SignSagittarius: {"freedom", "wisdom", "exploration"},
	domain.SignCapricorn:   {"achievement", "structure", "discipline"},
	domain.SignAquarius:    {"innovation", "community", "independence"},
	domain.SignPisces:      {"empathy", "spirituality", "imagination"},
}

var aspectMeanings = map[string]string{
	"conjunction": "the energies merge and amplify each other",
	"opposition":  "the energies pull in opposite directions and ask for balance",
	"trine":       "the energies flow together easily",
	"square":      "the energies create friction that drives growth",
	"sextile":     "the energies support each other when you make the effort",
	"quincunx":    "the energies need constant adjustment",
	"semisextile": "the energies touch lightly and can be integrated",
}

var houseTopics = [12]string{
	"self and appearance",
	"resources and values",
	"communication and siblings",
	"home and roots",
	"creativity and romance",
	"work and health",
	"partnerships",
	"shared resources and transformation",
	"travel and belief",
	"career and reputation",
	"friends and aspirations",
	"solitude and the unconscious",
}

// BodyName человекочитаемое имя тела
func BodyName(b domain.Body) string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return string(b)
}

func BodySymbol(b domain.Body) string { return bodySymbols[b] }

func BodyMeaning(b domain.Body) string { return bodyMeanings[b] }

func SignName(s domain.Sign) string {
	if name, ok := signNames[s]; ok {
		return name
	}
	return string(s)
}

func SignSymbol(s domain.Sign) string { return signSymbols[s] }

func SignKeywords(s domain.Sign) []string {
	return append([]string(nil), signKeywords[s]...)
}

// FormatBodyInSign трактовка положения тела, с оговоркой для приближённых тел
func FormatBodyInSign(pos domain.CelestialPosition) string {
	meaning, ok := bodyMeanings[pos.Body]
	style, styleOK := signStyles[pos.Sign]
	if !ok || !styleOK {
		return fmt.Sprintf(UnknownInterpreted, BodyName(pos.Body), SignName(pos.Sign))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(BodyInSign, BodyName(pos.Body), SignName(pos.Sign), pos.DegreeInSign, meaning, style))
	if pos.Retrograde {
		b.WriteString(RetrogradeSuffix)
	}
	if pos.Precision == domain.PrecisionApproximate {
		b.WriteString(ApproximateSuffix)
	}
	return b.String()
}

// FormatAspect трактовка аспекта
func FormatAspect(a domain.Aspect) string {
	motion := AspectSeparating
	if a.Applying {
		motion = AspectApplying
	}
	return fmt.Sprintf(AspectLine,
		BodyName(a.Body1), a.Kind.Name, BodyName(a.Body2), a.Orb, motion, aspectMeanings[a.Kind.Name])
}

// FormatHouse трактовка куспида дома
func FormatHouse(cusp domain.HouseCusp) string {
	if cusp.House < 1 || cusp.House > 12 {
		return ""
	}
	return fmt.Sprintf(HouseLine, cusp.House, SignName(cusp.Sign), houseTopics[cusp.House-1], signStyles[cusp.Sign])
}
