package kafka

import (
	"context"

	"github.com/admin/astro-core/internal/domain"
)

// IChartEventProducer публикует события о пересчёте карт
type IChartEventProducer interface {
	// PublishChartCalculated отправляет карту в топик событий, ключ = user id
	PublishChartCalculated(ctx context.Context, chart *domain.BirthChart) error
	// Send отправляет произвольное сообщение
	Send(ctx context.Context, key string, value []byte) error
	Close() error
}
