// Package main is the entry point for the calculator API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"petquote/internal/config"
	"petquote/internal/content"
	"petquote/internal/handlers"
	"petquote/internal/metrics"
	"petquote/internal/repositories"
	"petquote/internal/repositories/cache"
	"petquote/internal/routes"
	"petquote/internal/services/auth"
	"petquote/internal/services/rates"
	applog "petquote/internal/utils/logger"
)

// dbPinger reports database reachability on /health.
type dbPinger struct{ db *gorm.DB }

func (p dbPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func main() {
	config.LoadEnv()
	cfg := config.Load()
	appLogger := applog.Setup(cfg.LogLevel, cfg.IsProduction())

	health := map[string]handlers.Pinger{"redis": nil, "database": nil}

	// Redis is optional; without it rates are fetched on every request.
	var rateCache rates.Cache
	var cacheService *cache.CacheService
	if cfg.RedisEnabled() {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:         cfg.RedisHost,
			Port:         cfg.RedisPort,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		cacheService = cache.NewCacheService(client, cfg.RateCacheTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cacheService.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, continuing without rate cache")
			_ = cacheService.Close()
			cacheService = nil
		} else {
			log.Info().Str("host", cfg.RedisHost).Msg("connected to redis")
			rateCache = cacheService
			health["redis"] = cacheService
		}
		cancel()
	}

	// PostgreSQL is optional; it backs rate history and the admin routes.
	var db *gorm.DB
	var snapshots repositories.RateSnapshotRepository = repositories.NewRateSnapshotRepositoryMemory(0)
	var authService auth.Service
	if cfg.DatabaseEnabled() {
		var err error
		db, err = repositories.InitDB(repositories.DBConfig{
			Host:            cfg.DBHost,
			Port:            cfg.DBPort,
			User:            cfg.DBUser,
			Password:        cfg.DBPassword,
			Name:            cfg.DBName,
			MaxIdleConns:    config.GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    config.GetIntEnv("DB_MAX_OPEN_CONNS", 25),
			ConnMaxLifetime: config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		log.Info().Str("host", cfg.DBHost).Msg("connected to database")

		snapshots = repositories.NewRateSnapshotRepository(db)
		if cfg.AdminJWTSecret == "" {
			log.Warn().Msg("ADMIN_JWT_SECRET not set, admin routes disabled")
		} else {
			authService = auth.NewService(repositories.NewOperatorRepository(db), cfg.AdminJWTSecret, cfg.AdminTokenTTL)
		}
		health["database"] = dbPinger{db: db}
	}

	collector := metrics.NewCollector()

	source, err := rates.NewSource(rates.Options{
		Provider:    cfg.RateProvider,
		APIURL:      cfg.RateAPIURL,
		BOTURL:      cfg.RateBotURL,
		HTTPTimeout: cfg.RateHTTPTimeout,
		CacheTTL:    cfg.RateCacheTTL,
		Cache:       rateCache,
		History:     snapshots,
		Metrics:     collector,
		Logger:      appLogger,
	})
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.RateProvider).Msg("invalid rate provider")
	}

	tracker := rates.NewTracker(source.Provider)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RateHTTPTimeout)
	if state, err := tracker.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial rate fetch failed")
	} else {
		log.Info().Str("source", state.Source).Str("working_rate", state.WorkingRate).Msg("rate loaded")
	}
	cancel()

	pageContent, err := content.Load(cfg.ContentFile)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.ContentFile).Msg("using default page content")
	}

	var invalidator handlers.CacheInvalidator
	if source.Cached != nil {
		invalidator = source.Cached
	}

	app := fiber.New(fiber.Config{
		AppName:      "petquote",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Provider:  source.Provider,
		Tracker:   tracker,
		Cache:     invalidator,
		Snapshots: snapshots,
		Auth:      authService,
		Content:   pageContent,
		Metrics:   collector,
		Health:    health,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("provider", source.Provider.Name()).Msg("starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	if cacheService != nil {
		if err := cacheService.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis connection")
		}
	}
	if db != nil {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn().Err(err).Msg("failed to close database connection")
		}
	}
}
