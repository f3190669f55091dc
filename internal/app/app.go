package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/souravcsewala/ads-ecom-backend/internal/auth"
	"github.com/souravcsewala/ads-ecom-backend/internal/config"
	"github.com/souravcsewala/ads-ecom-backend/internal/event"
	handler "github.com/souravcsewala/ads-ecom-backend/internal/handler/http"
	"github.com/souravcsewala/ads-ecom-backend/internal/media"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository/postgres"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository/redisstore"
	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/internal/storage"
	"github.com/souravcsewala/ads-ecom-backend/internal/storage/memory"
	"github.com/souravcsewala/ads-ecom-backend/internal/storage/s3"
	"github.com/souravcsewala/ads-ecom-backend/migrations"
	"github.com/souravcsewala/ads-ecom-backend/pkg/database"
	"github.com/souravcsewala/ads-ecom-backend/pkg/health"
	pkgkafka "github.com/souravcsewala/ads-ecom-backend/pkg/kafka"
	"github.com/souravcsewala/ads-ecom-backend/pkg/middleware"
)

// App wires together all dependencies and runs the HTTP server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	redis      *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// PostgreSQL connection pool and schema migrations.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Redis backs the password reset token store.
	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("host", cfg.RedisHost),
		slog.Int("port", cfg.RedisPort),
	)

	// Kafka producer for domain events.
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Object store backend.
	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init object store: %w", err)
	}
	gateway := storage.NewGateway(store, cfg.S3Bucket, cfg.S3Region, logger)
	signer := media.NewSigner(gateway, 0)

	// Build the dependency graph.
	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	portfolioRepo := postgres.NewPortfolioRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	demoRepo := postgres.NewDemoContentRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	meetingRepo := postgres.NewMeetingRepository(pool)
	requestRepo := postgres.NewMeetingRequestRepository(pool)
	resetTokens := redisstore.NewResetTokenStore(redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessExpiry)
	eventProducer := event.NewProducer(producer, logger)

	services := handler.Services{
		User:           service.NewUserService(userRepo, resetTokens, jwtManager, gateway, signer, eventProducer, logger),
		Plan:           service.NewPlanService(planRepo, logger),
		Portfolio:      service.NewPortfolioService(portfolioRepo, gateway, signer, logger),
		Team:           service.NewTeamService(teamRepo, gateway, signer, logger),
		DemoContent:    service.NewDemoContentService(demoRepo, gateway, signer, logger),
		Order:          service.NewOrderService(orderRepo, userRepo, eventProducer, logger),
		Meeting:        service.NewMeetingService(meetingRepo, logger),
		MeetingRequest: service.NewMeetingRequestService(requestRepo, eventProducer, logger),
		Upload:         service.NewUploadService(gateway, logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(services, jwtManager, healthHandler, logger, handler.RouterConfig{
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		AuthRateLimit: cfg.AuthRateLimit,
		AuthRateBurst: cfg.AuthRateBurst,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		redis:      redisClient,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// newObjectStore selects the object store backend from configuration. The
// memory driver exists for local development without S3 credentials.
func newObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		baseURL := fmt.Sprintf("http://localhost:%d/dev-media", cfg.HTTPPort)
		return memory.New(baseURL), nil
	default:
		return s3.New(ctx, s3.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
