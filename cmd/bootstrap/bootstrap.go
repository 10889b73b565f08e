package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wmhn-clinic-api/config"
	deliveryHttp "wmhn-clinic-api/internal/delivery/http"
	"wmhn-clinic-api/internal/delivery/http/handler"
	"wmhn-clinic-api/internal/delivery/http/middleware"
	domainRepo "wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/infrastructure/cache"
	"wmhn-clinic-api/internal/infrastructure/database"
	"wmhn-clinic-api/internal/infrastructure/messaging"
	"wmhn-clinic-api/internal/infrastructure/monitoring"
	"wmhn-clinic-api/internal/infrastructure/search"
	"wmhn-clinic-api/internal/repository"
	"wmhn-clinic-api/internal/service"
	"wmhn-clinic-api/internal/usecase"
	"wmhn-clinic-api/pkg/jwt"
	"wmhn-clinic-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Producer    messaging.Producer
	Server      *http.Server
}

// infrastructure groups the optional backends resolved from config.
type infrastructure struct {
	doctorRepo  domainRepo.DoctorRepository
	auditRepo   domainRepo.AuditLogRepository
	cache       service.DirectoryCache
	revocations service.TokenRevocationService
	index       search.DoctorIndex
	producer    messaging.Producer
	metrics     *monitoring.Metrics
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	if err := monitoring.InitSentry(cfg.App, cfg.Sentry); err != nil {
		log.Warnf("Sentry disabled: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	infra := &infrastructure{metrics: monitoring.NewMetrics()}

	if err := app.initStore(ctx, infra); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initRedis(infra); err != nil {
		app.Close()
		return nil, err
	}
	app.initSearch(infra)
	app.initMessaging(infra)

	syncService := service.NewDirectorySyncService(infra.cache, infra.index, infra.producer, infra.metrics, log)
	if err := syncService.SyncOnStartup(ctx, infra.doctorRepo); err != nil {
		// The directory still serves from the store; search falls back in process.
		log.Warnf("Directory sync failed: %v", err)
		monitoring.CaptureError(err, map[string]interface{}{"phase": "startup"})
	}

	app.Server = initializeServer(cfg, log, infra, syncService)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func (app *App) initStore(ctx context.Context, infra *infrastructure) error {
	cfg := app.Config.DB

	switch cfg.Driver {
	case DriverMemory:
		infra.doctorRepo = repository.NewMemoryDoctorRepository()
		infra.auditRepo = repository.NewMemoryAuditLogRepository()
		app.Log.Info("Using in-memory record store")
	case DriverPostgres:
		db, err := database.NewPostgresConnection(cfg, app.Log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db

		if cfg.AutoMigrate {
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			app.Log.Info("Database migrations applied")
		}

		infra.doctorRepo = repository.NewDoctorRepository(db)
		infra.auditRepo = repository.NewAuditLogRepository(db)
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}

	if _, err := database.SeedDoctors(ctx, infra.doctorRepo, app.Log); err != nil {
		return err
	}
	return nil
}

// initRedis wires the directory cache and token revocation. Without a Redis
// host the directory is read straight from the store and revocations live in
// process.
func (app *App) initRedis(infra *infrastructure) error {
	if !app.Config.Redis.Enabled() {
		infra.cache = service.NewNoopDirectoryCache()
		infra.revocations = service.NewMemoryTokenRevocation()
		app.Log.Info("Redis not configured, directory cache disabled")
		return nil
	}

	redisClient, err := cache.NewRedisClient(app.Config.Redis, app.Log)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	infra.cache = service.NewRedisDirectoryCache(redisClient, app.Config.Cache.DirectoryTTL, app.Log, infra.metrics)
	infra.revocations = service.NewRedisTokenRevocation(redisClient)
	return nil
}

func (app *App) initSearch(infra *infrastructure) {
	if len(app.Config.Elasticsearch.URLs) == 0 {
		app.Log.Info("Elasticsearch not configured, search matches in process")
		return
	}

	index, err := search.NewElasticsearchDoctorIndex(app.Config.Elasticsearch)
	if err != nil {
		app.Log.Warnf("Elasticsearch unavailable, search matches in process: %v", err)
		return
	}
	infra.index = index
	app.Log.Info("Elasticsearch connected successfully")
}

func (app *App) initMessaging(infra *infrastructure) {
	if len(app.Config.Kafka.Brokers) == 0 {
		app.Log.Info("Kafka not configured, change events disabled")
		return
	}

	producer, err := messaging.NewKafkaProducer(app.Config.Kafka)
	if err != nil {
		app.Log.Warnf("Kafka unavailable, change events disabled: %v", err)
		return
	}
	infra.producer = producer
	app.Producer = producer
	app.Log.Info("Kafka producer connected successfully")
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, infra *infrastructure, syncService *service.DirectorySyncService) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	auditService := service.NewAuditService(log, infra.auditRepo)

	// Initialize usecases
	directoryUsecase := usecase.NewDoctorDirectoryUsecase(log, infra.doctorRepo, infra.cache, infra.index)
	formUsecase := usecase.NewDoctorFormUsecase(log, infra.doctorRepo, customValidator, syncService, auditService)
	listingUsecase := usecase.NewDoctorListingUsecase(log, infra.doctorRepo, syncService, auditService)
	submissionUsecase := usecase.NewSubmissionUsecase(log, infra.metrics)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, infra.auditRepo)
	authUsecase := usecase.NewAuthUsecase(log, infra.revocations, auditService)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(directoryUsecase)
	adminDoctorHandler := handler.NewAdminDoctorHandler(formUsecase, listingUsecase)
	submissionHandler := handler.NewSubmissionHandler(submissionUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	authHandler := handler.NewAuthHandler(authUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, infra.revocations, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	sentryMiddleware := middleware.NewSentryMiddleware(log)
	metricsMiddleware := middleware.NewMetricsMiddleware(infra.metrics)

	// Initialize router
	router := deliveryHttp.NewRouter(
		doctorHandler,
		adminDoctorHandler,
		submissionHandler,
		auditLogHandler,
		authHandler,
		authMiddleware,
		corsMiddleware,
		sentryMiddleware,
		metricsMiddleware,
		infra.metrics.Handler(),
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases every backend connection. Safe on a partially built App.
func (app *App) Close() {
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			app.Log.Warnf("Failed to close Kafka producer: %v", err)
		}
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	monitoring.FlushSentry()
}
