package astro

import (
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/admin/astro-core/internal/domain"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// birthMoment провалидированные данные рождения и момент расчёта в UTC
type birthMoment struct {
	Location *domain.BirthLocation
	Instant  time.Time
}

// validateInput проверяет вход и приводит его к записи BirthLocation.
// Без известного времени расчёт идёт на местный полдень
func validateInput(in domain.CreateChartInput, now time.Time) (*birthMoment, error) {
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty user id", domain.ErrInvalidUserID)
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(in.BirthDate))
	if err != nil {
		return nil, fmt.Errorf("%w: birth date %q, expected YYYY-MM-DD", domain.ErrInvalidDateFormat, in.BirthDate)
	}

	var clock *time.Time
	if in.BirthTime != nil && strings.TrimSpace(*in.BirthTime) != "" {
		parsed, err := time.Parse(timeLayout, strings.TrimSpace(*in.BirthTime))
		if err != nil {
			return nil, fmt.Errorf("%w: birth time %q, expected HH:MM", domain.ErrInvalidDateFormat, *in.BirthTime)
		}
		clock = &parsed
	}

	loc := time.UTC
	var timezone *string
	if in.BirthTimezone != nil && strings.TrimSpace(*in.BirthTimezone) != "" {
		name := strings.TrimSpace(*in.BirthTimezone)
		loc, err = time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidDateFormat, name)
		}
		timezone = &name
	}

	accuracy := in.BirthTimeAccuracy
	if accuracy == "" {
		accuracy = domain.AccuracyExact
	}
	if !accuracy.IsValid() {
		return nil, fmt.Errorf("%w: birth time accuracy %q", domain.ErrInvalidDateFormat, accuracy)
	}
	if clock == nil {
		accuracy = domain.AccuracyUnknown
	}

	city := strings.TrimSpace(in.BirthCity)
	country := strings.TrimSpace(in.BirthCountry)
	if city == "" || country == "" || in.Latitude == nil || in.Longitude == nil {
		return nil, fmt.Errorf("%w: city, country, latitude and longitude are required", domain.ErrMissingLocation)
	}

	lat, lon := *in.Latitude, *in.Longitude
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: lat=%v lon=%v", domain.ErrInvalidCoordinates, lat, lon)
	}

	hour, minute := 12, 0
	var birthTime *string
	if clock != nil && accuracy != domain.AccuracyUnknown {
		hour, minute = clock.Hour(), clock.Minute()
		formatted := clock.Format(timeLayout)
		birthTime = &formatted
	}

	instant := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc).UTC()

	var state *string
	if in.BirthState != nil && strings.TrimSpace(*in.BirthState) != "" {
		s := strings.TrimSpace(*in.BirthState)
		state = &s
	}

	return &birthMoment{
		Location: &domain.BirthLocation{
			UserID:            in.UserID,
			BirthDate:         date.Format(dateLayout),
			BirthTime:         birthTime,
			BirthTimezone:     timezone,
			BirthTimeAccuracy: accuracy,
			BirthCity:         city,
			BirthState:        state,
			BirthCountry:      country,
			Latitude:          lat,
			Longitude:         lon,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		Instant: instant,
	}, nil
}

// momentFromLocation восстанавливает момент расчёта из сохранённой записи
func momentFromLocation(loc *domain.BirthLocation) (*birthMoment, error) {
	return validateInput(domain.CreateChartInput{
		UserID:            loc.UserID,
		BirthDate:         loc.BirthDate,
		BirthTime:         loc.BirthTime,
		BirthTimezone:     loc.BirthTimezone,
		BirthTimeAccuracy: loc.BirthTimeAccuracy,
		BirthCity:         loc.BirthCity,
		BirthState:        loc.BirthState,
		BirthCountry:      loc.BirthCountry,
		Latitude:          &loc.Latitude,
		Longitude:         &loc.Longitude,
	}, loc.UpdatedAt)
}

// ParseDate дата YYYY-MM-DD или RFC3339. Пустая строка = fallback
func ParseDate(value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD or RFC3339", domain.ErrInvalidDateFormat, value)
	}
	return t, nil
}

// ParseUserID разбирает идентификатор пользователя из пути
func ParseUserID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrInvalidUserID, value)
	}
	return id, nil
}
