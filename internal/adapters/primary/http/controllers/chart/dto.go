package chart

import "github.com/admin/astro-core/internal/domain"

// CreateChartRequest тело POST /users/:userId/birth-chart
type CreateChartRequest struct {
	BirthDate         string                   `json:"birth_date" binding:"required"`
	BirthTime         *string                  `json:"birth_time"`
	BirthTimezone     *string                  `json:"birth_timezone"`
	BirthTimeAccuracy domain.BirthTimeAccuracy `json:"birth_time_accuracy"`
	BirthCity         string                   `json:"birth_city"`
	BirthState        *string                  `json:"birth_state"`
	BirthCountry      string                   `json:"birth_country"`
	Latitude          *float64                 `json:"latitude"`
	Longitude         *float64                 `json:"longitude"`
}

func (r CreateChartRequest) toInput() domain.CreateChartInput {
	accuracy := r.BirthTimeAccuracy
	if accuracy == "" {
		accuracy = domain.AccuracyExact
		if r.BirthTime == nil || *r.BirthTime == "" {
			accuracy = domain.AccuracyUnknown
		}
	}

	return domain.CreateChartInput{
		BirthDate:         r.BirthDate,
		BirthTime:         r.BirthTime,
		BirthTimezone:     r.BirthTimezone,
		BirthTimeAccuracy: accuracy,
		BirthCity:         r.BirthCity,
		BirthState:        r.BirthState,
		BirthCountry:      r.BirthCountry,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
	}
}

// TransitsResponse транзиты на дату
type TransitsResponse struct {
	UserID   string                   `json:"user_id"`
	Date     string                   `json:"date,omitempty"`
	Transits []domain.TransitSnapshot `json:"transits"`
}

// HistoryResponse архивные версии карты
type HistoryResponse struct {
	UserID   string   `json:"user_id"`
	Versions []string `json:"versions"`
}
