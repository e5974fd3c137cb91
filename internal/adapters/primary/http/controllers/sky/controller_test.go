package sky

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admin/astro-core/internal/adapters/primary/http/middlewares"
	"github.com/admin/astro-core/internal/domain"
	astroUsecase "github.com/admin/astro-core/internal/usecases/astro"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, limiter gin.HandlerFunc) *gin.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := astroUsecase.New(nil, nil, nil, nil, nil, nil, nil, log)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(svc, limiter, log).RegisterRoutes(r)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetPositions(t *testing.T) {
	w := get(newRouter(t, nil), "/api/v1/positions?date=2024-03-20")
	require.Equal(t, http.StatusOK, w.Code)

	var positions domain.PlanetaryPositions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &positions))
	assert.Len(t, positions.Bodies, len(domain.Bodies))
	assert.Equal(t, 2024, positions.Date.Year())
}

func TestGetPositions_BadDate(t *testing.T) {
	w := get(newRouter(t, nil), "/api/v1/positions?date=20-03-2024")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLunarCalendar(t *testing.T) {
	r := newRouter(t, nil)

	w := get(r, "/api/v1/lunar/calendar?start=2024-01-01&days=7")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Days     int                     `json:"days"`
		Calendar []domain.LunarPhaseData `json:"calendar"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Days)
	assert.Len(t, body.Calendar, 7)

	for _, days := range []string{"0", "366", "abc"} {
		w = get(r, "/api/v1/lunar/calendar?start=2024-01-01&days="+days)
		assert.Equal(t, http.StatusBadRequest, w.Code, days)
	}
}

func TestLunarDataAndNextPhase(t *testing.T) {
	r := newRouter(t, nil)

	w := get(r, "/api/v1/lunar?date=2024-01-11")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guidance"`)

	w = get(r, "/api/v1/lunar/next/full_moon?from=2024-01-01")
	require.Equal(t, http.StatusOK, w.Code)
	var next domain.NextPhase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &next))
	assert.Equal(t, domain.PhaseFullMoon, next.Phase)

	w = get(r, "/api/v1/lunar/next/blue_moon")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimited(t *testing.T) {
	limiter := middlewares.NewRateLimiter(0.001, 1)
	r := newRouter(t, limiter.Middleware())

	assert.Equal(t, http.StatusOK, get(r, "/api/v1/lunar?date=2024-01-11").Code)
	w := get(r, "/api/v1/lunar?date=2024-01-11")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
