package app

import (
	"errors"
	"fmt"

	server "github.com/admin/astro-core/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/astro-core/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/admin/astro-core/internal/adapters/secondary/kafka"
	"github.com/admin/astro-core/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-core/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astro-core/internal/adapters/secondary/storage/s3"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
	"github.com/admin/astro-core/internal/pkg/logger"
	jobScheduler "github.com/admin/astro-core/internal/services/jobs"
	astroUsecase "github.com/admin/astro-core/internal/usecases/astro"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const DefaultEnvFile = "deployments/local/.env"

type Config struct {
	Postgres *pg.Config            `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config  `envconfig:"REDIS"`
	Kafka    *kafkaAdapter.Config  `envconfig:"KAFKA"`
	S3       *s3Adapter.Config     `envconfig:"S3"`
	Server   *server.Config        `envconfig:"APISERVER"`
	Log      *logger.Config        `envconfig:"LOG"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
	Engine   *astroUsecase.Config  `envconfig:"ENGINE"`
	Jobs     *jobScheduler.Config  `envconfig:"JOBS"`
}

// NewEnvConfig читает конфиг из окружения. .env файлы необязательны,
// уже выставленные переменные окружения не перезаписываются
func NewEnvConfig(envPrefix string, envFiles ...string) (*Config, error) {
	cfg := &Config{}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate проверяет значения, которые иначе всплыли бы только при старте компонентов
func (c *Config) Validate() error {
	var errs []error

	if c.Engine != nil {
		if _, err := ephemeris.NewHouseSystem(c.Engine.HouseSystem); err != nil {
			errs = append(errs, fmt.Errorf("engine: %w", err))
		}
	}

	if c.Jobs != nil && c.Jobs.Enabled {
		for _, spec := range []string{c.Jobs.PositionsSchedule, c.Jobs.LunarSchedule} {
			if _, err := jobScheduler.ParseSchedule(spec, c.Jobs.Timezone); err != nil {
				errs = append(errs, fmt.Errorf("jobs: %w", err))
			}
		}
		if c.Jobs.LunarDays < astroUsecase.MinCalendarDays || c.Jobs.LunarDays > astroUsecase.MaxCalendarDays {
			errs = append(errs, fmt.Errorf("jobs: lunar days must be between %d and %d, got %d",
				astroUsecase.MinCalendarDays, astroUsecase.MaxCalendarDays, c.Jobs.LunarDays))
		}
	}

	if c.Kafka != nil && c.Kafka.Enabled && c.Kafka.ConsumerGroup == "" {
		errs = append(errs, errors.New("kafka: consumer group is required"))
	}

	return errors.Join(errs...)
}
