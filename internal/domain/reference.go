package domain

// ZodiacSignInfo справочные данные знака
type ZodiacSignInfo struct {
	Sign           Sign     `json:"sign"`
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	Element        Element  `json:"element"`
	Modality       Modality `json:"modality"`
	Ruler          Body     `json:"ruler"`
	DateRange      string   `json:"date_range"`
	StartLongitude float64  `json:"start_longitude"`
	Keywords       []string `json:"keywords"`
}

// PlanetInfo справочные данные тела
type PlanetInfo struct {
	Body      Body          `json:"body"`
	Name      string        `json:"name"`
	Symbol    string        `json:"symbol"`
	Meaning   string        `json:"meaning"`
	Precision PrecisionTier `json:"precision"`
}
