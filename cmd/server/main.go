package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/otsbank/bankcore/internal/adapter/http"
	"github.com/otsbank/bankcore/internal/adapter/http/handler"
	memoryRepo "github.com/otsbank/bankcore/internal/adapter/repository/memory"
	postgresRepo "github.com/otsbank/bankcore/internal/adapter/repository/postgres"
	redisRepo "github.com/otsbank/bankcore/internal/adapter/repository/redis"
	"github.com/otsbank/bankcore/internal/infrastructure/auth"
	"github.com/otsbank/bankcore/internal/infrastructure/config"
	"github.com/otsbank/bankcore/internal/infrastructure/logger"
	"github.com/otsbank/bankcore/internal/infrastructure/metrics"
	"github.com/otsbank/bankcore/internal/infrastructure/postgres"
	"github.com/otsbank/bankcore/internal/infrastructure/redis"
	"github.com/otsbank/bankcore/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	countryRepo := postgresRepo.NewCountryRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	entityStore := postgresRepo.NewEntityStore(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	appMetrics := metrics.New()

	// Country cache tiers
	localCache := memoryRepo.NewCountryCache(cfg.CacheSlidingTTL, cfg.CacheAbsoluteTTL)
	sharedCache := redisRepo.NewCountryCache(redisClient, cfg.CacheSlidingTTL, cfg.CacheAbsoluteTTL)
	countryCache := usecase.NewCountryCache(localCache, sharedCache, countryRepo, appLogger, appMetrics)

	// Unit of work factory: transaction boundary + audit capture
	identity := auth.NewContextIdentity()
	uowFactory := usecase.NewUnitOfWorkFactory(txManager, entityStore, auditRepo, identity, idGen, appLogger)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(uowFactory, accountRepo, idGen, appMetrics)
	ledgerUC := usecase.NewLedgerUseCase(uowFactory, accountRepo, txnRepo, idGen, retrier, appMetrics)
	countryUC := usecase.NewCountryUseCase(uowFactory, countryRepo, countryCache, idGen)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	countryHandler := handler.NewCountryHandler(countryUC)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: accountHandler,
		LedgerHandler:  ledgerHandler,
		CountryHandler: countryHandler,
		AuditHandler:   auditHandler,
		HealthHandler:  healthHandler,
		JWTManager:     jwtManager,
		Metrics:        appMetrics,
		Logger:         appLogger,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
