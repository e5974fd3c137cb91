package domain

// AspectNature гармоничность аспекта для подсчёта совместимости
type AspectNature string

const (
	NatureHarmonious  AspectNature = "harmonious"
	NatureChallenging AspectNature = "challenging"
	NatureNeutral     AspectNature = "neutral"
)

// AspectKind тип аспекта: точный угол и максимальный орбис
type AspectKind struct {
	Name   string       `json:"name"`
	Angle  float64      `json:"angle"`
	MaxOrb float64      `json:"max_orb"`
	Nature AspectNature `json:"nature"`
}

var (
	AspectConjunction = AspectKind{Name: "conjunction", Angle: 0, MaxOrb: 8, Nature: NatureHarmonious}
	AspectOpposition  = AspectKind{Name: "opposition", Angle: 180, MaxOrb: 8, Nature: NatureChallenging}
	AspectTrine       = AspectKind{Name: "trine", Angle: 120, MaxOrb: 8, Nature: NatureHarmonious}
	AspectSquare      = AspectKind{Name: "square", Angle: 90, MaxOrb: 7, Nature: NatureChallenging}
	AspectSextile     = AspectKind{Name: "sextile", Angle: 60, MaxOrb: 6, Nature: NatureHarmonious}
	AspectQuincunx    = AspectKind{Name: "quincunx", Angle: 150, MaxOrb: 3, Nature: NatureNeutral}
	AspectSemisextile = AspectKind{Name: "semisextile", Angle: 30, MaxOrb: 2, Nature: NatureNeutral}
)

// AspectKinds канонический порядок семи аспектов
var AspectKinds = []AspectKind{
	AspectConjunction,
	AspectOpposition,
	AspectTrine,
	AspectSquare,
	AspectSextile,
	AspectQuincunx,
	AspectSemisextile,
}

// Aspect угловое отношение между двумя телами
type Aspect struct {
	Body1    Body       `json:"body1"`
	Body2    Body       `json:"body2"`
	Kind     AspectKind `json:"kind"`
	Angle    float64    `json:"angle"` // фактическое угловое расстояние, 0..180
	Orb      float64    `json:"orb"`   // отклонение от точного угла
	Applying bool       `json:"applying"`
}

// Involves проверяет, участвует ли тело в аспекте
func (a Aspect) Involves(b Body) bool {
	return a.Body1 == b || a.Body2 == b
}
