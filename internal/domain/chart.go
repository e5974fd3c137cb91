package domain

import (
	"time"

	"github.com/google/uuid"
)

// BirthTimeAccuracy насколько точно известно время рождения
type BirthTimeAccuracy string

const (
	AccuracyExact       BirthTimeAccuracy = "exact"
	AccuracyApproximate BirthTimeAccuracy = "approximate"
	AccuracyUnknown     BirthTimeAccuracy = "unknown"
)

func (a BirthTimeAccuracy) IsValid() bool {
	switch a {
	case AccuracyExact, AccuracyApproximate, AccuracyUnknown:
		return true
	}
	return false
}

// BirthLocation данные о месте и времени рождения пользователя (одна запись на пользователя)
type BirthLocation struct {
	UserID            uuid.UUID         `json:"user_id" db:"user_id"`
	BirthDate         string            `json:"birth_date" db:"birth_date"` // YYYY-MM-DD
	BirthTime         *string           `json:"birth_time,omitempty" db:"birth_time"` // HH:MM
	BirthTimezone     *string           `json:"birth_timezone,omitempty" db:"birth_timezone"`
	BirthTimeAccuracy BirthTimeAccuracy `json:"birth_time_accuracy" db:"birth_time_accuracy"`
	BirthCity         string            `json:"birth_city" db:"birth_city"`
	BirthState        *string           `json:"birth_state,omitempty" db:"birth_state"`
	BirthCountry      string            `json:"birth_country" db:"birth_country"`
	Latitude          float64           `json:"latitude" db:"latitude"`
	Longitude         float64           `json:"longitude" db:"longitude"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// HasKnownTime дома считаются только при известном времени рождения
func (l *BirthLocation) HasKnownTime() bool {
	return l.BirthTime != nil && *l.BirthTime != "" && l.BirthTimeAccuracy != AccuracyUnknown
}

// CreateChartInput входные данные для создания/обновления натальной карты
type CreateChartInput struct {
	UserID            uuid.UUID         `json:"user_id"`
	BirthDate         string            `json:"birth_date"`
	BirthTime         *string           `json:"birth_time,omitempty"`
	BirthTimezone     *string           `json:"birth_timezone,omitempty"`
	BirthTimeAccuracy BirthTimeAccuracy `json:"birth_time_accuracy"`
	BirthCity         string            `json:"birth_city"`
	BirthState        *string           `json:"birth_state,omitempty"`
	BirthCountry      string            `json:"birth_country"`
	Latitude          *float64          `json:"latitude"`
	Longitude         *float64          `json:"longitude"`
}

// HouseCusp куспид дома
type HouseCusp struct {
	House     int     `json:"house"`
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	Degree    float64 `json:"degree"`
}

// DominantBody тело и его вес в карте
type DominantBody struct {
	Body  Body `json:"body"`
	Score int  `json:"score"`
}

// Interpretation текстовые трактовки карты
type Interpretation struct {
	Bodies  map[Body]string `json:"bodies"`
	Aspects []string        `json:"aspects"`
	Houses  []string        `json:"houses,omitempty"`
}

// BirthChart собранная натальная карта. Пересчитывается целиком при изменении данных рождения
type BirthChart struct {
	UserID          uuid.UUID                  `json:"user_id"`
	SunSign         Sign                       `json:"sun_sign"`
	MoonSign        Sign                       `json:"moon_sign"`
	RisingSign      *Sign                      `json:"rising_sign"`
	Positions       map[Body]CelestialPosition `json:"positions"`
	Houses          []HouseCusp                `json:"houses"`
	HouseSystem     string                     `json:"house_system,omitempty"`
	Ascendant       *float64                   `json:"ascendant"`
	Midheaven       *float64                   `json:"midheaven"`
	Aspects         []Aspect                   `json:"aspects"`
	ElementBalance  map[Element]int            `json:"element_balance"`
	ModalityBalance map[Modality]int           `json:"modality_balance"`
	DominantBodies  []DominantBody             `json:"dominant_bodies"`
	Interpretation  Interpretation             `json:"interpretation"`
	CalculatedAt    time.Time                  `json:"calculated_at"`
	Version         string                     `json:"version"`
}

// TransitSnapshot текущее положение тела против натального. Не сохраняется
type TransitSnapshot struct {
	Body    Body              `json:"body"`
	Current CelestialPosition `json:"current"`
	Natal   CelestialPosition `json:"natal"`
	Aspect  *Aspect           `json:"aspect"`
}

// Compatibility оценка совместимости двух карт, 0..100
type Compatibility struct {
	Overall       int `json:"overall"`
	Emotional     int `json:"emotional"`
	Communication int `json:"communication"`
	Passion       int `json:"passion"`
	Harmonious    int `json:"harmonious"`
	Challenging   int `json:"challenging"`
}

// SynastryResult результат сравнения двух карт
type SynastryResult struct {
	Aspects       []Aspect      `json:"aspects"`
	Compatibility Compatibility `json:"compatibility"`
}

// PlanetaryPositions положения всех тел на дату
type PlanetaryPositions struct {
	Date   time.Time           `json:"date"`
	Bodies []CelestialPosition `json:"bodies"`
}
