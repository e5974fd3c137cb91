package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/admin/astro-core/internal/domain"
	"github.com/gin-gonic/gin"
)

// StatusFor код ответа для ошибки use case
func StatusFor(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrChartNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error пишет {"error": "..."}. Текст внутренних ошибок наружу не отдаётся
func Error(ctx *gin.Context, log *slog.Logger, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "op", op, "error", err)
		ctx.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	log.Debug("request rejected", "op", op, "status", status, "error", err)
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// BadRequest ошибка разбора параметров запроса
func BadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}
