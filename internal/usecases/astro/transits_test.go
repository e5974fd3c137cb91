package astro

import (
	"context"
	"testing"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/astrotime"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransits_SameMomentIsConjunctionEverywhere(t *testing.T) {
	env := newTestEnv()
	at := time.Date(2010, 3, 14, 8, 0, 0, 0, time.UTC)
	natal := &domain.BirthChart{Positions: ephemeris.Positions(astrotime.JulianDay(at))}

	snapshots := env.svc.Transits(natal, at)
	require.Len(t, snapshots, len(domain.Bodies))

	for i, snap := range snapshots {
		assert.Equal(t, domain.Bodies[i], snap.Body)
		assert.Equal(t, snap.Body, snap.Current.Body)
		assert.Equal(t, snap.Body, snap.Natal.Body)
		require.NotNil(t, snap.Aspect, snap.Body)
		assert.Equal(t, "conjunction", snap.Aspect.Kind.Name)
		assert.InDelta(t, 0, snap.Aspect.Orb, 1e-9)
	}
}

func TestTransits_OnlySameBodyCompared(t *testing.T) {
	env := newTestEnv()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	natal := &domain.BirthChart{Positions: map[domain.Body]domain.CelestialPosition{
		domain.BodySun: {Body: domain.BodySun, Longitude: 0, Sign: domain.SignAries},
	}}

	snapshots := env.svc.Transits(natal, at)
	require.Len(t, snapshots, 1)
	assert.Equal(t, domain.BodySun, snapshots[0].Body)
}

func TestGetTransits_RequiresChart(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetTransits(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrChartNotFound)
}

func TestGetTransits_InvalidDate(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetTransits(context.Background(), uuid.New(), "yesterday")
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
}

func TestGetTransits_StoredChart(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	chart, err := env.svc.CreateOrUpdateChart(ctx, validInput(uuid.New()))
	require.NoError(t, err)

	snapshots, err := env.svc.GetTransits(ctx, chart.UserID, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, snapshots, len(domain.Bodies))
	for _, snap := range snapshots {
		assert.Equal(t, chart.Positions[snap.Body].Longitude, snap.Natal.Longitude)
	}
}
