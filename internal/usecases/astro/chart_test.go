package astro

import (
	"context"
	"errors"
	"testing"

	"github.com/admin/astro-core/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrUpdateChart_FullChart(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := uuid.New()

	chart, err := env.svc.CreateOrUpdateChart(ctx, validInput(userID))
	require.NoError(t, err)

	assert.Equal(t, userID, chart.UserID)
	assert.Len(t, chart.Positions, len(domain.Bodies))
	assert.Equal(t, domain.SignGemini, chart.SunSign)
	assert.Equal(t, chart.Positions[domain.BodyMoon].Sign, chart.MoonSign)

	require.NotNil(t, chart.RisingSign)
	require.NotNil(t, chart.Ascendant)
	require.NotNil(t, chart.Midheaven)
	require.Len(t, chart.Houses, 12)
	assert.Equal(t, "whole_sign", chart.HouseSystem)
	assert.Equal(t, *chart.RisingSign, chart.Houses[0].Sign)
	for i, h := range chart.Houses {
		assert.Equal(t, i+1, h.House)
	}

	assert.Equal(t, fixedNow, chart.CalculatedAt)
	assert.Equal(t, "1.0.0", chart.Version)
	assert.Len(t, chart.Interpretation.Bodies, len(domain.Bodies))
	assert.Len(t, chart.Interpretation.Aspects, len(chart.Aspects))
	assert.Len(t, chart.Interpretation.Houses, 12)

	stored, err := env.charts.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, chart, stored)

	loc, err := env.locations.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "14:30", *loc.BirthTime)
	assert.Equal(t, domain.AccuracyExact, loc.BirthTimeAccuracy)

	assert.Equal(t, chart.SunSign, env.profiles.signs[userID])
	assert.Len(t, env.producer.published, 1)
	assert.Len(t, env.archive.paths, 1)

	exists, _ := env.cache.Exists(ctx, chartCacheKey(userID))
	assert.True(t, exists)
}

func TestCreateOrUpdateChart_UnknownTimeSkipsHouses(t *testing.T) {
	env := newTestEnv()
	in := validInput(uuid.New())
	in.BirthTime = nil
	in.BirthTimeAccuracy = domain.AccuracyExact

	chart, err := env.svc.CreateOrUpdateChart(context.Background(), in)
	require.NoError(t, err)

	assert.Nil(t, chart.Houses)
	assert.Nil(t, chart.Ascendant)
	assert.Nil(t, chart.Midheaven)
	assert.Nil(t, chart.RisingSign)
	assert.Empty(t, chart.HouseSystem)
	assert.Empty(t, chart.Interpretation.Houses)
	assert.Len(t, chart.Positions, len(domain.Bodies))

	loc := env.locations.locations[in.UserID]
	assert.Equal(t, domain.AccuracyUnknown, loc.BirthTimeAccuracy)
	assert.Nil(t, loc.BirthTime)
}

func TestCreateOrUpdateChart_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *domain.CreateChartInput)
		want   error
	}{
		{"bad date", func(in *domain.CreateChartInput) { in.BirthDate = "15.06.1990" }, domain.ErrInvalidDateFormat},
		{"bad time", func(in *domain.CreateChartInput) { in.BirthTime = ptr("25:99") }, domain.ErrInvalidDateFormat},
		{"bad timezone", func(in *domain.CreateChartInput) { in.BirthTimezone = ptr("Mars/Olympus") }, domain.ErrInvalidDateFormat},
		{"bad accuracy", func(in *domain.CreateChartInput) { in.BirthTimeAccuracy = "roughly" }, domain.ErrInvalidDateFormat},
		{"no city", func(in *domain.CreateChartInput) { in.BirthCity = "  " }, domain.ErrMissingLocation},
		{"no latitude", func(in *domain.CreateChartInput) { in.Latitude = nil }, domain.ErrMissingLocation},
		{"latitude out of range", func(in *domain.CreateChartInput) { in.Latitude = ptr(91.0) }, domain.ErrInvalidCoordinates},
		{"longitude out of range", func(in *domain.CreateChartInput) { in.Longitude = ptr(-180.5) }, domain.ErrInvalidCoordinates},
		{"nil user", func(in *domain.CreateChartInput) { in.UserID = uuid.Nil }, domain.ErrInvalidUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			in := validInput(uuid.New())
			tt.modify(&in)

			chart, err := env.svc.CreateOrUpdateChart(context.Background(), in)
			require.Error(t, err)
			assert.Nil(t, chart)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsValidationError(err))
			assert.Empty(t, env.charts.charts)
			assert.Empty(t, env.producer.published)
		})
	}
}

func TestCreateOrUpdateChart_SideEffectFailuresAreIgnored(t *testing.T) {
	env := newTestEnv()
	env.producer.err = errors.New("broker down")
	env.archive.err = errors.New("bucket missing")
	env.cache.setErr = errors.New("redis down")

	chart, err := env.svc.CreateOrUpdateChart(context.Background(), validInput(uuid.New()))
	require.NoError(t, err)
	assert.Contains(t, env.charts.charts, chart.UserID)
}

func TestCreateOrUpdateChart_TransactionFailureLeavesNoState(t *testing.T) {
	env := newTestEnv()
	env.charts.upsertErr = errors.New("constraint violation")
	userID := uuid.New()

	_, err := env.svc.CreateOrUpdateChart(context.Background(), validInput(userID))
	require.Error(t, err)

	assert.NotContains(t, env.charts.charts, userID)
	assert.NotContains(t, env.profiles.signs, userID)
	assert.Empty(t, env.producer.published)
	assert.Empty(t, env.archive.paths)
}

func TestCalculateChart_Deterministic(t *testing.T) {
	env := newTestEnv()
	in := validInput(uuid.New())

	first, _, err := env.svc.CalculateChart(in)
	require.NoError(t, err)
	second, _, err := env.svc.CalculateChart(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Empty(t, env.charts.charts)
}

func TestCalculateChart_PositionsInRange(t *testing.T) {
	env := newTestEnv()
	chart, _, err := env.svc.CalculateChart(validInput(uuid.New()))
	require.NoError(t, err)

	for body, pos := range chart.Positions {
		assert.GreaterOrEqual(t, pos.Longitude, 0.0, body)
		assert.Less(t, pos.Longitude, 360.0, body)
		assert.GreaterOrEqual(t, pos.DegreeInSign, 0.0, body)
		assert.Less(t, pos.DegreeInSign, 30.0, body)
	}
	for _, a := range chart.Aspects {
		assert.LessOrEqual(t, a.Orb, a.Kind.MaxOrb)
	}
}

func TestGetBirthChart_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetBirthChart(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
}

func TestGetBirthChart_ServedFromCache(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created, err := env.svc.CreateOrUpdateChart(ctx, validInput(uuid.New()))
	require.NoError(t, err)

	got, err := env.svc.GetBirthChart(ctx, created.UserID)
	require.NoError(t, err)

	assert.Equal(t, 0, env.charts.gets)
	assert.Equal(t, created.SunSign, got.SunSign)
	assert.Len(t, got.Positions, len(domain.Bodies))
}

func TestGetBirthChart_FallsBackToRepository(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created, err := env.svc.CreateOrUpdateChart(ctx, validInput(uuid.New()))
	require.NoError(t, err)
	require.NoError(t, env.cache.Delete(ctx, chartCacheKey(created.UserID)))

	got, err := env.svc.GetBirthChart(ctx, created.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.charts.gets)
	assert.Equal(t, created, got)

	exists, _ := env.cache.Exists(ctx, chartCacheKey(created.UserID))
	assert.True(t, exists)
}

func TestRecalculateChart_UsesStoredLocation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	created, err := env.svc.CreateOrUpdateChart(ctx, validInput(uuid.New()))
	require.NoError(t, err)

	env.svc.Cfg.Version = "2.0.0"
	recalculated, err := env.svc.RecalculateChart(ctx, created.UserID)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", recalculated.Version)
	assert.Equal(t, created.Positions, recalculated.Positions)
	assert.Equal(t, "2.0.0", env.charts.charts[created.UserID].Version)
}

func TestRecalculateChart_MissingLocation(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.RecalculateChart(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
	assert.NotErrorIs(t, err, domain.ErrMissingLocation)
	assert.False(t, domain.IsValidationError(err))
}

func TestChartHistory(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := uuid.New()

	_, err := env.svc.CreateOrUpdateChart(ctx, validInput(userID))
	require.NoError(t, err)
	_, err = env.svc.RecalculateChart(ctx, userID)
	require.NoError(t, err)

	history, err := env.svc.ChartHistory(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	env.svc.Archive = nil
	history, err = env.svc.ChartHistory(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NotNil(t, history)
}
