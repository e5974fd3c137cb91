package astro

import (
	"testing"

	"github.com/admin/astro-core/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZodiacSigns(t *testing.T) {
	signs := ZodiacSigns()
	require.Len(t, signs, 12)

	aries := signs[0]
	assert.Equal(t, domain.SignAries, aries.Sign)
	assert.Equal(t, "Aries", aries.Name)
	assert.Equal(t, domain.ElementFire, aries.Element)
	assert.Equal(t, domain.ModalityCardinal, aries.Modality)
	assert.Equal(t, domain.BodyMars, aries.Ruler)
	assert.Equal(t, 0.0, aries.StartLongitude)

	pisces := signs[11]
	assert.Equal(t, domain.SignPisces, pisces.Sign)
	assert.Equal(t, domain.ElementWater, pisces.Element)
	assert.Equal(t, domain.ModalityMutable, pisces.Modality)
	assert.Equal(t, 330.0, pisces.StartLongitude)

	for _, s := range signs {
		assert.NotEmpty(t, s.Symbol, s.Sign)
		assert.NotEmpty(t, s.Keywords, s.Sign)
		assert.True(t, s.Ruler.IsValid(), s.Sign)
	}
}

func TestPlanets(t *testing.T) {
	planets := Planets()
	require.Len(t, planets, len(domain.Bodies))

	byBody := map[domain.Body]domain.PlanetInfo{}
	for _, p := range planets {
		byBody[p.Body] = p
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Symbol)
	}

	assert.Equal(t, domain.PrecisionPrecise, byBody[domain.BodySun].Precision)
	assert.Equal(t, domain.PrecisionApproximate, byBody[domain.BodyChiron].Precision)
	assert.Equal(t, "North Node", byBody[domain.BodyNorthNode].Name)
}
