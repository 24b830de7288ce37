package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/backend"
	"github.com/noah-isme/successpath-portal/internal/config"
	"github.com/noah-isme/successpath-portal/internal/cron"
	"github.com/noah-isme/successpath-portal/internal/database"
	"github.com/noah-isme/successpath-portal/internal/handler"
	"github.com/noah-isme/successpath-portal/internal/middleware"
	"github.com/noah-isme/successpath-portal/internal/repository"
	"github.com/noah-isme/successpath-portal/internal/router"
	"github.com/noah-isme/successpath-portal/internal/service"
	"github.com/noah-isme/successpath-portal/internal/session"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var (
		store   session.Store
		sweeper cron.Sweeper
	)
	switch cfg.SessionStore {
	case config.StoreRedis:
		store = repository.NewSessionCacheRepository(redisClient, cfg.SessionTTL)
	case config.StoreDatabase:
		db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		entries := repository.NewSessionEntryRepository(db)
		store, sweeper = entries, entries
	default:
		memory := session.NewMemoryStore()
		store, sweeper = memory, memory
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	client := backend.New(backend.Config{
		BaseURL:   cfg.BackendURL,
		Timeout:   cfg.BackendTimeout,
		RequestID: middleware.CorrelationIDFromContext,
	}, logger)

	events := service.NewSessionEvents(natsConn, cfg.NATSSubject, logger)
	registry := session.NewRegistry(store, client, logger,
		session.WithListener(events),
		session.WithVerifyTimeout(cfg.SessionVerifyTimeout),
	)

	payloads := validation.NewPayloads()
	authService := service.NewAuthService(client, payloads, logger)
	adminService := service.NewAdminService(client, payloads, logger)
	dashboardService := service.NewDashboardService(client, redisClient, cfg.DashboardCacheTTL, logger)
	studentService := service.NewStudentService(client, payloads, logger)
	importService := service.NewMarksImportService(client, payloads, cfg.ImportMaxSizeMB, logger)

	scheduler, err := cron.New(cron.Config{
		Schedule: cfg.SessionSweepSchedule,
		TTL:      cfg.SessionTTL,
		Idle:     cfg.SessionIdle,
	}, sweeper, registry, logger)
	if err != nil {
		log.Fatalf("failed to schedule session sweep: %v", err)
	}
	scheduler.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.AllowOrigins,
	})

	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    handler.NewAuthHandler(authService, cfg.AppName, logger),
		SessionHandler: handler.NewSessionHandler(cfg.SessionVerifyGrace),
		AdminHandler:   handler.NewAdminHandler(adminService, dashboardService, importService, logger),
		StudentHandler: handler.NewStudentHandler(studentService, dashboardService, logger),
		SessionMiddleware: middleware.Session(middleware.SessionConfig{
			Registry: registry,
			Codec:    middleware.NewCookieCodec([]byte(cfg.CookieHashKey), []byte(cfg.CookieBlockKey), cfg.SessionTTL),
			MaxAge:   cfg.SessionTTL,
			Secure:   cfg.CookieSecure,
			Logger:   logger,
		}),
		GateMiddleware: router.NewGate(cfg),
		LoginLimiter:   middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("session_store", cfg.SessionStore).Msg("portal started")

	waitForShutdown(app, scheduler)
}

func waitForShutdown(app *fiber.App, scheduler *cron.Scheduler) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	scheduler.Stop(ctx)
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
