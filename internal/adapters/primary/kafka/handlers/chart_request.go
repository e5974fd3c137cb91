package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/admin/astro-core/internal/domain"
	kafkaPorts "github.com/admin/astro-core/internal/ports/kafka"
	"github.com/google/uuid"
)

const (
	ActionCalculate   = "calculate_chart"
	ActionRecalculate = "recalculate_chart"
)

// chartCalculator часть IAstroUseCase, нужная обработчику
type chartCalculator interface {
	CreateOrUpdateChart(ctx context.Context, in domain.CreateChartInput) (*domain.BirthChart, error)
	RecalculateChart(ctx context.Context, userID uuid.UUID) (*domain.BirthChart, error)
}

// ChartRequestHandler рассчитывает карты по запросам из топика chart_requests
type ChartRequestHandler struct {
	Charts chartCalculator
	Log    *slog.Logger
}

// NewChartRequestHandler создаёт новый handler запросов на расчёт
func NewChartRequestHandler(charts chartCalculator, log *slog.Logger) kafkaPorts.MessageHandler {
	return &ChartRequestHandler{
		Charts: charts,
		Log:    log,
	}
}

// HandleMessage ключ сообщения = user id. Без заголовка action выполняется расчёт по телу сообщения
func (h *ChartRequestHandler) HandleMessage(ctx context.Context, key string, value []byte, headers []sarama.RecordHeader) error {
	action := headerValue(headers, "action")
	if action == "" {
		action = ActionCalculate
	}

	switch action {
	case ActionCalculate:
		return h.calculate(ctx, key, value)
	case ActionRecalculate:
		return h.recalculate(ctx, key)
	default:
		h.Log.Warn("unknown chart request action", "action", action, "key", key)
		return domain.WrapBusinessError(fmt.Errorf("unknown action %q", action))
	}
}

func (h *ChartRequestHandler) calculate(ctx context.Context, key string, value []byte) error {
	var in domain.CreateChartInput
	if err := json.Unmarshal(value, &in); err != nil {
		h.Log.Warn("malformed chart request", "error", err, "key", key)
		return domain.WrapBusinessError(fmt.Errorf("failed to unmarshal chart request: %w", err))
	}

	if in.UserID == uuid.Nil && key != "" {
		userID, err := uuid.Parse(key)
		if err != nil {
			h.Log.Warn("chart request key is not a user id", "key", key)
			return domain.WrapBusinessError(domain.ErrInvalidUserID)
		}
		in.UserID = userID
	}

	chart, err := h.Charts.CreateOrUpdateChart(ctx, in)
	if err != nil {
		if domain.IsValidationError(err) {
			h.Log.Warn("chart request rejected", "error", err, "user_id", in.UserID)
			return domain.WrapBusinessError(err)
		}
		return fmt.Errorf("failed to calculate chart: %w", err)
	}

	h.Log.Debug("chart request processed", "user_id", chart.UserID, "sun_sign", chart.SunSign)
	return nil
}

func (h *ChartRequestHandler) recalculate(ctx context.Context, key string) error {
	userID, err := uuid.Parse(key)
	if err != nil {
		h.Log.Warn("chart request key is not a user id", "key", key)
		return domain.WrapBusinessError(domain.ErrInvalidUserID)
	}

	if _, err := h.Charts.RecalculateChart(ctx, userID); err != nil {
		if domain.IsValidationError(err) || errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrChartNotFound) {
			h.Log.Warn("chart recalculation rejected", "error", err, "user_id", userID)
			return domain.WrapBusinessError(err)
		}
		return fmt.Errorf("failed to recalculate chart: %w", err)
	}

	h.Log.Debug("chart recalculated from kafka", "user_id", userID)
	return nil
}

func headerValue(headers []sarama.RecordHeader, key string) string {
	for _, h := range headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}
