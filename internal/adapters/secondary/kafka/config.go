package kafka

import (
	"strings"

	"github.com/IBM/sarama"
)

const (
	TopicChartEvents   = "chart_events"
	TopicChartRequests = "chart_requests"
)

// Config конфигурация для Kafka producer/consumer
type Config struct {
	Enabled          bool   `envconfig:"ENABLED" default:"false"`
	Brokers          string `envconfig:"BROKERS"`                             // "broker1:9092,broker2:9092"
	EventsTopic      string `envconfig:"EVENTS_TOPIC" default:"chart_events"` // события пересчёта карт
	RequestsTopic    string `envconfig:"REQUESTS_TOPIC" default:"chart_requests"`
	ConsumerGroup    string `envconfig:"CONSUMER_GROUP" default:"astro-core"`
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	if strings.TrimSpace(c.Brokers) == "" {
		return []string{"localhost:9092"}
	}

	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) eventsTopic() string {
	if c.EventsTopic == "" {
		return TopicChartEvents
	}
	return c.EventsTopic
}

// RequestsTopicName топик входящих запросов на расчёт
func (c *Config) RequestsTopicName() string {
	if c.RequestsTopic == "" {
		return TopicChartRequests
	}
	return c.RequestsTopic
}

// ApplySecurity настраивает SASL/TLS в конфиге sarama
func (c *Config) ApplySecurity(config *sarama.Config) {
	if c.SecurityProtocol != "SASL_SSL" && c.SecurityProtocol != "SASL_PLAINTEXT" {
		return
	}

	config.Net.SASL.Enable = true
	config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	if c.SASLMechanism == "SCRAM-SHA-256" {
		config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
	}
	config.Net.SASL.User = c.SASLUsername
	config.Net.SASL.Password = c.SASLPassword
	// TLS только для SASL_SSL
	if c.SecurityProtocol == "SASL_SSL" {
		config.Net.TLS.Enable = true
	}
}

// ProducerConfig конфиг sarama для синхронного producer
func (c *Config) ProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	c.ApplySecurity(config)
	return config
}
