package domain

// Body небесное тело или расчётная точка, которую отслеживает движок
type Body string

const (
	BodySun       Body = "sun"
	BodyMoon      Body = "moon"
	BodyMercury   Body = "mercury"
	BodyVenus     Body = "venus"
	BodyMars      Body = "mars"
	BodyJupiter   Body = "jupiter"
	BodySaturn    Body = "saturn"
	BodyUranus    Body = "uranus"
	BodyNeptune   Body = "neptune"
	BodyPluto     Body = "pluto"
	BodyNorthNode Body = "north_node"
	BodyChiron    Body = "chiron"
)

// Bodies фиксированный порядок всех 12 тел. Порядок используется везде, где важна детерминированность
var Bodies = []Body{
	BodySun,
	BodyMoon,
	BodyMercury,
	BodyVenus,
	BodyMars,
	BodyJupiter,
	BodySaturn,
	BodyUranus,
	BodyNeptune,
	BodyPluto,
	BodyNorthNode,
	BodyChiron,
}

// Index возвращает позицию тела в Bodies или -1
func (b Body) Index() int {
	for i, body := range Bodies {
		if body == b {
			return i
		}
	}
	return -1
}

func (b Body) IsValid() bool {
	return b.Index() >= 0
}

// Sign знак зодиака
type Sign string

const (
	SignAries       Sign = "aries"
	SignTaurus      Sign = "taurus"
	SignGemini      Sign = "gemini"
	SignCancer      Sign = "cancer"
	SignLeo         Sign = "leo"
	SignVirgo       Sign = "virgo"
	SignLibra       Sign = "libra"
	SignScorpio     Sign = "scorpio"
	SignSagittarius Sign = "sagittarius"
	SignCapricorn   Sign = "capricorn"
	SignAquarius    Sign = "aquarius"
	SignPisces      Sign = "pisces"
)

// Signs 12 знаков по порядку начиная с Овна (0° эклиптики)
var Signs = [12]Sign{
	SignAries,
	SignTaurus,
	SignGemini,
	SignCancer,
	SignLeo,
	SignVirgo,
	SignLibra,
	SignScorpio,
	SignSagittarius,
	SignCapricorn,
	SignAquarius,
	SignPisces,
}

func (s Sign) Index() int {
	for i, sign := range Signs {
		if sign == s {
			return i
		}
	}
	return -1
}

func (s Sign) IsValid() bool {
	return s.Index() >= 0
}

// Element стихия знака
type Element string

const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

var Elements = []Element{ElementFire, ElementEarth, ElementAir, ElementWater}

// Modality крест (качество) знака
type Modality string

const (
	ModalityCardinal Modality = "cardinal"
	ModalityFixed    Modality = "fixed"
	ModalityMutable  Modality = "mutable"
)

var Modalities = []Modality{ModalityCardinal, ModalityFixed, ModalityMutable}

// Element возвращает стихию знака: по три знака на стихию, чередуются огонь-земля-воздух-вода
func (s Sign) Element() Element {
	idx := s.Index()
	if idx < 0 {
		return ""
	}
	return Elements[idx%4]
}

// Modality возвращает крест знака: кардинальный-фиксированный-мутабельный по кругу
func (s Sign) Modality() Modality {
	idx := s.Index()
	if idx < 0 {
		return ""
	}
	return Modalities[idx%3]
}

// PrecisionTier уровень точности расчёта позиции
type PrecisionTier string

const (
	PrecisionPrecise     PrecisionTier = "precise"
	PrecisionApproximate PrecisionTier = "approximate"
)

// CelestialPosition положение одного тела в один момент времени.
// Всегда вычисляется, никогда не изменяется после расчёта
type CelestialPosition struct {
	Body         Body          `json:"body"`
	Longitude    float64       `json:"longitude"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Speed        *float64      `json:"speed,omitempty"` // градусов в сутки
	Retrograde   bool          `json:"retrograde"`
	Sign         Sign          `json:"sign"`
	DegreeInSign float64       `json:"degree_in_sign"`
	Precision    PrecisionTier `json:"precision"`
}
