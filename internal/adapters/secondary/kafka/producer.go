package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/admin/astro-core/internal/domain"
	kafkaPorts "github.com/admin/astro-core/internal/ports/kafka"
	"github.com/admin/astro-core/internal/pkg/metrics"
)

const ActionChartCalculated = "chart_calculated"

// Producer реализация Kafka producer событий о картах
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *slog.Logger
}

// NewProducer создаёт новый Kafka producer
func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), cfg.ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.eventsTopic(),
	)

	return NewProducerWithSync(producer, cfg.eventsTopic(), log), nil
}

// NewProducerWithSync оборачивает готовый SyncProducer
func NewProducerWithSync(producer sarama.SyncProducer, topic string, log *slog.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

var _ kafkaPorts.IChartEventProducer = (*Producer)(nil)

// ChartCalculatedEvent тело события о пересчёте карты
type ChartCalculatedEvent struct {
	UserID       string             `json:"user_id"`
	SunSign      domain.Sign        `json:"sun_sign"`
	MoonSign     domain.Sign        `json:"moon_sign"`
	RisingSign   *domain.Sign       `json:"rising_sign,omitempty"`
	Version      string             `json:"version"`
	CalculatedAt string             `json:"calculated_at"`
	Chart        *domain.BirthChart `json:"chart"`
}

// PublishChartCalculated отправляет карту в топик событий, ключ = user id
func (p *Producer) PublishChartCalculated(ctx context.Context, chart *domain.BirthChart) error {
	if chart == nil {
		return fmt.Errorf("chart is nil")
	}

	event := ChartCalculatedEvent{
		UserID:       chart.UserID.String(),
		SunSign:      chart.SunSign,
		MoonSign:     chart.MoonSign,
		RisingSign:   chart.RisingSign,
		Version:      chart.Version,
		CalculatedAt: chart.CalculatedAt.UTC().Format(time.RFC3339),
		Chart:        chart,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal chart event: %w", err)
	}

	return p.send(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.UserID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("action"), Value: []byte(ActionChartCalculated)},
			{Key: []byte("version"), Value: []byte(chart.Version)},
		},
	})
}

// Send отправляет произвольное сообщение
func (p *Producer) Send(ctx context.Context, key string, value []byte) error {
	return p.send(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
}

func (p *Producer) send(msg *sarama.ProducerMessage) error {
	key, _ := msg.Key.Encode()

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		metrics.RecordKafkaMessage(p.topic, "failed")
		p.log.Debug("kafka send failed",
			"error", err,
			"topic", p.topic,
			"key", string(key),
		)
		return fmt.Errorf("kafka send failed [topic=%s, key=%s]: %w", p.topic, key, err)
	}

	metrics.RecordKafkaMessage(p.topic, "sent")
	p.log.Debug("message sent to kafka",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"key", string(key),
	)
	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	p.log.Info("kafka producer closed")
	return nil
}
