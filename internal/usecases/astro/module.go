package astro

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/astro-core/internal/pkg/aspects"
	"github.com/admin/astro-core/internal/pkg/ephemeris"
	"github.com/admin/astro-core/internal/ports/cache"
	"github.com/admin/astro-core/internal/ports/kafka"
	"github.com/admin/astro-core/internal/ports/repository"
	"github.com/admin/astro-core/internal/ports/storage"
)

// Config настройки движка
type Config struct {
	HouseSystem       string        `envconfig:"HOUSE_SYSTEM" default:"whole_sign"`
	Version           string        `envconfig:"VERSION" default:"1.0.0"`
	ChartCacheTTL     time.Duration `envconfig:"CHART_CACHE_TTL" default:"24h"`
	PositionsCacheTTL time.Duration `envconfig:"POSITIONS_CACHE_TTL" default:"25h"`
	LunarCacheTTL     time.Duration `envconfig:"LUNAR_CACHE_TTL" default:"25h"`
}

func defaultConfig() Config {
	return Config{
		HouseSystem:       ephemeris.HouseSystemWholeSign,
		Version:           "1.0.0",
		ChartCacheTTL:     24 * time.Hour,
		PositionsCacheTTL: 25 * time.Hour,
		LunarCacheTTL:     25 * time.Hour,
	}
}

// Service астрологический движок и его граница с хранилищами.
// Расчёты чистые, побочные эффекты только в методах с context
type Service struct {
	ChartRepo    repository.IChartRepo
	LocationRepo repository.IBirthLocationRepo
	ProfileRepo  repository.IUserProfileRepo
	Events       kafka.IChartEventProducer // может быть nil
	Archive      storage.IChartArchive     // может быть nil
	Cache        cache.Cache               // может быть nil
	Houses       ephemeris.HouseSystem
	Aspects      *aspects.Matcher
	Cfg          Config
	Now          func() time.Time
	Log          *slog.Logger
}

// New создаёт сервис. Репозитории могут быть nil, если нужны только чистые расчёты (CLI)
func New(
	chartRepo repository.IChartRepo,
	locationRepo repository.IBirthLocationRepo,
	profileRepo repository.IUserProfileRepo,
	events kafka.IChartEventProducer,
	archive storage.IChartArchive,
	cacheClient cache.Cache,
	cfg *Config,
	log *slog.Logger,
) (*Service, error) {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if c.Version == "" {
		c.Version = defaultConfig().Version
	}

	houses, err := ephemeris.NewHouseSystem(c.HouseSystem)
	if err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return &Service{
		ChartRepo:    chartRepo,
		LocationRepo: locationRepo,
		ProfileRepo:  profileRepo,
		Events:       events,
		Archive:      archive,
		Cache:        cacheClient,
		Houses:       houses,
		Aspects:      aspects.Default(),
		Cfg:          c,
		Now:          time.Now,
		Log:          log,
	}, nil
}
