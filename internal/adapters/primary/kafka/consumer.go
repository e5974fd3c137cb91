package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	kafkaAdapter "github.com/admin/astro-core/internal/adapters/secondary/kafka"
	"github.com/admin/astro-core/internal/domain"
	"github.com/admin/astro-core/internal/pkg/metrics"
	kafkaPorts "github.com/admin/astro-core/internal/ports/kafka"
)

// Consumer читает запросы на расчёт карт из Kafka
type Consumer struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  kafkaPorts.MessageHandler
	log      *slog.Logger
}

// NewConsumer создаёт новый Kafka consumer
func NewConsumer(cfg *kafkaAdapter.Config, handler kafkaPorts.MessageHandler, log *slog.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.ApplySecurity(config)

	consumer, err := sarama.NewConsumerGroup(cfg.GetBrokers(), cfg.ConsumerGroup, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	log.Info("kafka consumer created",
		"brokers", cfg.Brokers,
		"topic", cfg.RequestsTopicName(),
		"consumer_group", cfg.ConsumerGroup,
	)

	return &Consumer{
		consumer: consumer,
		topic:    cfg.RequestsTopicName(),
		handler:  handler,
		log:      log,
	}, nil
}

// Start читает топик до отмены контекста
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		handler: c.handler,
		log:     c.log,
		topic:   c.topic,
	}

	for {
		if err := c.consumer.Consume(ctx, []string{c.topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Error("error from consumer", "error", err, "topic", c.topic)
			return fmt.Errorf("consumer error: %w", err)
		}
		if ctx.Err() != nil {
			c.log.Info("kafka consumer stopping", "topic", c.topic)
			return nil
		}
	}
}

// Close закрывает consumer
func (c *Consumer) Close() error {
	if err := c.consumer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka consumer: %w", err)
	}
	c.log.Info("kafka consumer closed", "topic", c.topic)
	return nil
}

// consumerGroupHandler реализует sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	handler kafkaPorts.MessageHandler
	log     *slog.Logger
	topic   string
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.log.Info("kafka consumer group session setup", "topic", h.topic)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.log.Info("kafka consumer group session cleanup", "topic", h.topic)
	return nil
}

// ConsumeClaim обрабатывает сообщения из Kafka
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case <-session.Context().Done():
			return nil
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if h.process(session.Context(), message) {
				session.MarkMessage(message, "")
			}
		}
	}
}

// process true, если сообщение можно закоммитить.
// Бизнес-ошибки не лечатся повтором, поэтому тоже коммитятся
func (h *consumerGroupHandler) process(ctx context.Context, message *sarama.ConsumerMessage) bool {
	key := string(message.Key)
	headers := make([]sarama.RecordHeader, 0, len(message.Headers))
	for _, hdr := range message.Headers {
		if hdr != nil {
			headers = append(headers, *hdr)
		}
	}

	err := h.handler.HandleMessage(ctx, key, message.Value, headers)
	switch {
	case err == nil:
		metrics.RecordKafkaMessage(message.Topic, "processed")
		return true
	case domain.IsBusinessError(err):
		metrics.RecordKafkaMessage(message.Topic, "rejected")
		return true
	default:
		metrics.RecordKafkaMessage(message.Topic, "failed")
		h.log.Error("failed to handle kafka message",
			"error", err,
			"topic", message.Topic,
			"key", key,
			"partition", message.Partition,
			"offset", message.Offset,
		)
		return false
	}
}
