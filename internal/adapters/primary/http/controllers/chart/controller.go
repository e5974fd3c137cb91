package chart

import (
	"log/slog"
	"net/http"

	"github.com/admin/astro-core/internal/adapters/primary/http/response"
	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/ports/usecase"
	astroUsecase "github.com/admin/astro-core/internal/usecases/astro"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	Astro usecase.IAstroUseCase
	Log   *slog.Logger
}

func New(astro usecase.IAstroUseCase, log *slog.Logger) *Controller {
	return &Controller{
		Astro: astro,
		Log:   log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/users/:userId/birth-chart", c.createBirthChart)
		api.GET("/users/:userId/birth-chart", c.getBirthChart)
		api.POST("/users/:userId/birth-chart/recalculate", c.recalculateBirthChart)
		api.GET("/users/:userId/birth-chart/history", c.getChartHistory)
		api.GET("/users/:userId/transits", c.getTransits)
		api.GET("/synastry", c.getSynastry)
	}
}

func (c *Controller) userID(ctx *gin.Context) (uuid.UUID, bool) {
	return parseUserID(ctx, ctx.Param("userId"))
}

func parseUserID(ctx *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := astroUsecase.ParseUserID(raw)
	if err != nil {
		response.BadRequest(ctx, domain.ErrInvalidUserID.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) createBirthChart(ctx *gin.Context) {
	userID, ok := c.userID(ctx)
	if !ok {
		return
	}

	var req CreateChartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind birth chart request", "error", err, "user_id", userID)
		response.BadRequest(ctx, "invalid request body")
		return
	}

	in := req.toInput()
	in.UserID = userID

	chart, err := c.Astro.CreateOrUpdateChart(ctx.Request.Context(), in)
	if err != nil {
		response.Error(ctx, c.Log, "create_birth_chart", err)
		return
	}

	ctx.JSON(http.StatusCreated, chart)
}

func (c *Controller) getBirthChart(ctx *gin.Context) {
	userID, ok := c.userID(ctx)
	if !ok {
		return
	}

	chart, err := c.Astro.GetBirthChart(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, c.Log, "get_birth_chart", err)
		return
	}

	ctx.JSON(http.StatusOK, chart)
}

func (c *Controller) recalculateBirthChart(ctx *gin.Context) {
	userID, ok := c.userID(ctx)
	if !ok {
		return
	}

	chart, err := c.Astro.RecalculateChart(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, c.Log, "recalculate_birth_chart", err)
		return
	}

	ctx.JSON(http.StatusOK, chart)
}

func (c *Controller) getChartHistory(ctx *gin.Context) {
	userID, ok := c.userID(ctx)
	if !ok {
		return
	}

	versions, err := c.Astro.ChartHistory(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, c.Log, "get_chart_history", err)
		return
	}

	ctx.JSON(http.StatusOK, HistoryResponse{UserID: userID.String(), Versions: versions})
}

func (c *Controller) getTransits(ctx *gin.Context) {
	userID, ok := c.userID(ctx)
	if !ok {
		return
	}

	date := ctx.Query("date")
	transits, err := c.Astro.GetTransits(ctx.Request.Context(), userID, date)
	if err != nil {
		response.Error(ctx, c.Log, "get_transits", err)
		return
	}

	ctx.JSON(http.StatusOK, TransitsResponse{
		UserID:   userID.String(),
		Date:     date,
		Transits: transits,
	})
}

func (c *Controller) getSynastry(ctx *gin.Context) {
	userA, ok := parseUserID(ctx, ctx.Query("userA"))
	if !ok {
		return
	}
	userB, ok := parseUserID(ctx, ctx.Query("userB"))
	if !ok {
		return
	}

	result, err := c.Astro.GetSynastry(ctx.Request.Context(), userA, userB)
	if err != nil {
		response.Error(ctx, c.Log, "get_synastry", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
