package astrotime

import (
	"testing"
	"time"

	"github.com/admin/astro-core/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestJulianDay_J2000IsExact(t *testing.T) {
	jd := JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 2451545.0, jd)
}

func TestJulianDay_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"sputnik launch day", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"february uses month 14", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 2460369.5},
		{"reference new moon date", time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC), 2451549.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JulianDay(tt.at), 1e-6)
		})
	}
}

func TestJulianDay_UsesUTC(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	local := time.Date(2000, 1, 1, 15, 0, 0, 0, moscow)
	assert.Equal(t, 2451545.0, JulianDay(local))
}

func TestTimeFromJulianDay_RoundTrip(t *testing.T) {
	at := time.Date(1988, 6, 15, 8, 30, 0, 0, time.UTC)
	assert.True(t, at.Equal(TimeFromJulianDay(JulianDay(at))))
}

func TestJulianCenturies(t *testing.T) {
	assert.Equal(t, 0.0, JulianCenturies(J2000))
	assert.InDelta(t, 1.0, JulianCenturies(J2000+DaysPerCentury), 1e-12)
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-720, 0},
		{359.5, 359.5},
	}

	for _, tt := range tests {
		got := NormalizeDegrees(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "NormalizeDegrees(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestDegreesToSign(t *testing.T) {
	tests := []struct {
		lon      float64
		wantSign domain.Sign
		wantDeg  float64
	}{
		{0, domain.SignAries, 0},
		{29.999, domain.SignAries, 29.999},
		{30, domain.SignTaurus, 0},
		{135.5, domain.SignLeo, 15.5},
		{359.9, domain.SignPisces, 29.9},
		{-15, domain.SignPisces, 15},
	}

	for _, tt := range tests {
		sign, deg := DegreesToSign(tt.lon)
		assert.Equal(t, tt.wantSign, sign, "sign for %v", tt.lon)
		assert.InDelta(t, tt.wantDeg, deg, 1e-9, "degree for %v", tt.lon)
	}
}

func TestDegreesToSign_RangeInvariant(t *testing.T) {
	for lon := -720.0; lon <= 720.0; lon += 0.37 {
		sign, deg := DegreesToSign(lon)
		assert.True(t, sign.IsValid())
		assert.GreaterOrEqual(t, deg, 0.0)
		assert.Less(t, deg, 30.0)
	}
}

func TestAngularDistance_ShortestArc(t *testing.T) {
	assert.InDelta(t, 20.0, AngularDistance(350, 10), 1e-9)
	assert.InDelta(t, 20.0, AngularDistance(10, 350), 1e-9)
	assert.InDelta(t, 180.0, AngularDistance(0, 180), 1e-9)
	assert.InDelta(t, 0.0, AngularDistance(45, 405), 1e-9)
}
