package reference

import (
	"net/http"

	astroUsecase "github.com/admin/astro-core/internal/usecases/astro"
	"github.com/gin-gonic/gin"
)

// Controller справочники знаков и планет
type Controller struct {
	Limiter gin.HandlerFunc // может быть nil
}

func New(limiter gin.HandlerFunc) *Controller {
	return &Controller{Limiter: limiter}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	zodiac := router.Group("/api/v1/zodiac")
	if c.Limiter != nil {
		zodiac.Use(c.Limiter)
	}
	zodiac.GET("/signs", c.signs)
	zodiac.GET("/planets", c.planets)
}

func (c *Controller) signs(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"signs": astroUsecase.ZodiacSigns()})
}

func (c *Controller) planets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"planets": astroUsecase.Planets()})
}
