package alerter

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/admin/astro-core/internal/ports/service"
	"github.com/gin-gonic/gin"
)

// Controller пересылает алерты внешнего мониторинга в канал алертов
type Controller struct {
	AlerterService service.IAlerterService
	Log            *slog.Logger
}

func New(alerterService service.IAlerterService, log *slog.Logger) *Controller {
	return &Controller{
		AlerterService: alerterService,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhooks/alert", c.handleAlert)
}

func (c *Controller) handleAlert(ctx *gin.Context) {
	var payload AlertPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		c.Log.Warn("failed to bind alert request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	c.Log.Debug("received alert",
		"message_length", len(payload.Message),
		"source", payload.Source,
		"severity", payload.Severity,
	)

	if c.AlerterService == nil {
		c.Log.Info("alerter service not configured, skipping alert", "source", payload.Source)
		ctx.JSON(http.StatusOK, gin.H{"ok": true, "message": "alerter not configured"})
		return
	}

	if err := c.AlerterService.SendAlert(ctx.Request.Context(), formatAlert(payload)); err != nil {
		c.Log.Warn("failed to send alert", "error", err, "source", payload.Source)
		// 200, чтобы отправитель не повторял запрос
		ctx.JSON(http.StatusOK, gin.H{"ok": false, "error": "failed to send alert"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func formatAlert(payload AlertPayload) string {
	var b strings.Builder
	b.WriteString("🔔 ")
	if payload.Source != "" {
		b.WriteString(payload.Source)
	} else {
		b.WriteString("alert")
	}
	if payload.Severity != "" {
		b.WriteString(" [")
		b.WriteString(strings.ToUpper(payload.Severity))
		b.WriteString("]")
	}
	b.WriteString("\n\n")
	b.WriteString(payload.Message)
	return b.String()
}
