package sky

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/admin/astro-core/internal/adapters/primary/http/response"
	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/usecase"
	"github.com/gin-gonic/gin"
)

const defaultCalendarDays = 30

// Controller публичные данные о небе: позиции планет и фазы Луны
type Controller struct {
	Astro   usecase.IAstroUseCase
	Limiter gin.HandlerFunc // может быть nil
	Log     *slog.Logger
}

func New(astro usecase.IAstroUseCase, limiter gin.HandlerFunc, log *slog.Logger) *Controller {
	return &Controller{
		Astro:   astro,
		Limiter: limiter,
		Log:     log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	if c.Limiter != nil {
		api.Use(c.Limiter)
	}
	{
		api.GET("/positions", c.getPositions)
		api.GET("/lunar", c.getLunarData)
		api.GET("/lunar/calendar", c.getLunarCalendar)
		api.GET("/lunar/next/:phase", c.findNextPhase)
	}
}

func (c *Controller) getPositions(ctx *gin.Context) {
	positions, err := c.Astro.GetCurrentPlanetaryPositions(ctx.Request.Context(), ctx.Query("date"))
	if err != nil {
		response.Error(ctx, c.Log, "get_positions", err)
		return
	}

	ctx.JSON(http.StatusOK, positions)
}

func (c *Controller) getLunarData(ctx *gin.Context) {
	data, err := c.Astro.GetLunarData(ctx.Request.Context(), ctx.Query("date"))
	if err != nil {
		response.Error(ctx, c.Log, "get_lunar_data", err)
		return
	}

	ctx.JSON(http.StatusOK, data)
}

func (c *Controller) getLunarCalendar(ctx *gin.Context) {
	days := defaultCalendarDays
	if raw := ctx.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(ctx, domain.ErrInvalidDateRange.Error())
			return
		}
		days = n
	}

	start := ctx.Query("start")
	calendar, err := c.Astro.GetLunarCalendar(ctx.Request.Context(), start, days)
	if err != nil {
		response.Error(ctx, c.Log, "get_lunar_calendar", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"start":    start,
		"days":     days,
		"calendar": calendar,
	})
}

func (c *Controller) findNextPhase(ctx *gin.Context) {
	next, err := c.Astro.FindNextPhase(ctx.Request.Context(), ctx.Param("phase"), ctx.Query("from"))
	if err != nil {
		response.Error(ctx, c.Log, "find_next_phase", err)
		return
	}

	ctx.JSON(http.StatusOK, next)
}
