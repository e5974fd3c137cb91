package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/astro-core/internal/adapters/primary/http"
	alerterController "github.com/admin/astro-core/internal/adapters/primary/http/controllers/alerter"
	chartController "github.com/admin/astro-core/internal/adapters/primary/http/controllers/chart"
	healthcheckController "github.com/admin/astro-core/internal/adapters/primary/http/controllers/healthcheck"
	metricsController "github.com/admin/astro-core/internal/adapters/primary/http/controllers/metrics"
	referenceController "github.com/admin/astro-core/internal/adapters/primary/http/controllers/reference"
	skyController "github.com/admin/astro-core/internal/adapters/primary/http/controllers/sky"
	"github.com/admin/astro-core/internal/adapters/primary/http/middlewares"
	kafkaConsumerAdapter "github.com/admin/astro-core/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/admin/astro-core/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/admin/astro-core/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/admin/astro-core/internal/adapters/secondary/kafka"
	"github.com/admin/astro-core/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/astro-core/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-core/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astro-core/internal/adapters/secondary/storage/s3"
	"github.com/admin/astro-core/internal/ports/cache"
	"github.com/admin/astro-core/internal/ports/kafka"
	"github.com/admin/astro-core/internal/ports/repository"
	"github.com/admin/astro-core/internal/ports/service"
	"github.com/admin/astro-core/internal/ports/storage"
	birthLocationRepo "github.com/admin/astro-core/internal/repository/birthlocation"
	chartRepo "github.com/admin/astro-core/internal/repository/chart"
	userProfileRepo "github.com/admin/astro-core/internal/repository/userprofile"
	alerterService "github.com/admin/astro-core/internal/services/alerter"
	jobScheduler "github.com/admin/astro-core/internal/services/jobs"
	astroUsecase "github.com/admin/astro-core/internal/usecases/astro"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB            *sqlx.DB
	HTTPServer    *http.Server
	Astro         *astroUsecase.Service
	KafkaProducer *kafkaAdapter.Producer
	KafkaConsumer *kafkaConsumerAdapter.Consumer
	Cache         cache.Cache
	JobScheduler  *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	persistenceLayer := pg.NewDB(db)
	repos := a.initRepositories(persistenceLayer)
	externalServices := a.initExternalServices(ctx)

	producer := a.initKafkaProducer()

	astroUseCase, err := a.initUseCases(repos, externalServices, producer)
	if err != nil {
		return nil, fmt.Errorf("failed to init use cases: %w", err)
	}

	consumer := a.initKafkaConsumer(astroUseCase)
	httpServer := a.initHTTP(persistenceLayer, astroUseCase, externalServices.Alerter)

	scheduler, err := a.initJobScheduler(externalServices.Alerter, astroUseCase)
	if err != nil {
		return nil, fmt.Errorf("failed to init job scheduler: %w", err)
	}

	return &Dependencies{
		DB:            db,
		HTTPServer:    httpServer,
		Astro:         astroUseCase,
		KafkaProducer: producer,
		KafkaConsumer: consumer,
		Cache:         externalServices.Cache,
		JobScheduler:  scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Chart    repository.IChartRepo
	Location repository.IBirthLocationRepo
	Profile  repository.IUserProfileRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(persistenceLayer *pg.DB) *repositories {
	return &repositories{
		Chart:    chartRepo.New(persistenceLayer, a.Log),
		Location: birthLocationRepo.New(persistenceLayer, a.Log),
		Profile:  userProfileRepo.New(persistenceLayer, a.Log),
	}
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Alerter service.IAlerterService
	Cache   cache.Cache
	Archive storage.IChartArchive
}

// initExternalServices инициализирует алертер, кэш и архив карт.
// Недоступный Redis или S3 не мешает старту
func (a *App) initExternalServices(ctx context.Context) *externalServices {
	services := &externalServices{}

	var alerterClient *alerterAdapter.Client
	if a.Cfg.Alerter != nil {
		alerterClient = alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
	}
	services.Alerter = alerterService.New(alerterClient, a.Log)

	services.Cache = a.initCache(ctx)

	if a.Cfg.S3 != nil && a.Cfg.S3.Enabled {
		minioClient, err := a.Cfg.S3.NewClient(ctx)
		if err != nil {
			a.Log.Warn("failed to init s3 archive, continuing without chart archive", "error", err)
		} else {
			files := s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			services.Archive = s3Adapter.NewChartArchive(files, a.Log)
			a.Log.Info("s3 chart archive connected", "bucket", a.Cfg.S3.Bucket)
		}
	}

	return services
}

// initCache Redis, если он включён и доступен, иначе кэш в памяти процесса
func (a *App) initCache(ctx context.Context) cache.Cache {
	if a.Cfg.Redis != nil && a.Cfg.Redis.Enabled {
		rdb, err := a.Cfg.Redis.NewConnection(ctx)
		if err == nil {
			a.Log.Info("redis cache connected successfully")
			return redisAdapter.NewClient(rdb, a.Cfg.Redis.KeyPrefix)
		}
		a.Log.Warn("failed to init redis cache, falling back to in-memory cache", "error", err)
	}

	return inmemory.NewCache()
}

// initKafkaProducer nil, если Kafka выключена или недоступна
func (a *App) initKafkaProducer() *kafkaAdapter.Producer {
	if a.Cfg.Kafka == nil || !a.Cfg.Kafka.Enabled {
		return nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, chart events disabled", "error", err)
		return nil
	}
	return producer
}

func (a *App) initKafkaConsumer(astroUseCase *astroUsecase.Service) *kafkaConsumerAdapter.Consumer {
	if a.Cfg.Kafka == nil || !a.Cfg.Kafka.Enabled {
		return nil
	}

	handler := kafkaHandlers.NewChartRequestHandler(astroUseCase, a.Log)
	consumer, err := kafkaConsumerAdapter.NewConsumer(a.Cfg.Kafka, handler, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka consumer, chart requests disabled", "error", err)
		return nil
	}
	return consumer
}

// initUseCases инициализирует UseCases приложения
func (a *App) initUseCases(
	repos *repositories,
	externalServices *externalServices,
	producer *kafkaAdapter.Producer,
) (*astroUsecase.Service, error) {
	// без producer интерфейс должен остаться nil
	var events kafka.IChartEventProducer
	if producer != nil {
		events = producer
	}

	return astroUsecase.New(
		repos.Chart,
		repos.Location,
		repos.Profile,
		events,                   // может быть nil
		externalServices.Archive, // может быть nil
		externalServices.Cache,
		a.Cfg.Engine,
		a.Log,
	)
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db healthcheckController.Pinger,
	astroUseCase *astroUsecase.Service,
	alerterSvc service.IAlerterService,
) *http.Server {
	limiter := middlewares.NewRateLimiter(a.Cfg.Server.RateLimitRPS, a.Cfg.Server.RateLimitBurst).Middleware()

	controllers := []server.Controller{
		healthcheckController.New(db, astroUseCase.Cfg.Version, a.Log),
		metricsController.New(),
		chartController.New(astroUseCase, a.Log),
		skyController.New(astroUseCase, limiter, a.Log),
		referenceController.New(limiter),
		alerterController.New(alerterSvc, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initJobScheduler регистрирует джобы прогрева кэша
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	astroUseCase *astroUsecase.Service,
) (*jobScheduler.Scheduler, error) {
	if a.Cfg.Jobs == nil || !a.Cfg.Jobs.Enabled {
		a.Log.Info("job scheduler disabled")
		return nil, nil
	}

	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc, nil)

	positionsSchedule, err := jobScheduler.ParseSchedule(a.Cfg.Jobs.PositionsSchedule, a.Cfg.Jobs.Timezone)
	if err != nil {
		return nil, err
	}
	scheduler.Register(jobScheduler.NewPositionsUpdater(astroUseCase, positionsSchedule, a.Log))
	a.Log.Info("positions updater job registered", "schedule", positionsSchedule.String())

	lunarSchedule, err := jobScheduler.ParseSchedule(a.Cfg.Jobs.LunarSchedule, a.Cfg.Jobs.Timezone)
	if err != nil {
		return nil, err
	}
	scheduler.Register(jobScheduler.NewLunarCalendarWarmer(astroUseCase, lunarSchedule, a.Cfg.Jobs.LunarDays, a.Log))
	a.Log.Info("lunar calendar warmer job registered", "schedule", lunarSchedule.String(), "days", a.Cfg.Jobs.LunarDays)

	return scheduler, nil
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres(ctx context.Context) (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
