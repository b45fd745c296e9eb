// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fundlift/backend/internal/activity"
	"github.com/fundlift/backend/internal/admin"
	"github.com/fundlift/backend/internal/auth"
	"github.com/fundlift/backend/internal/campaign"
	"github.com/fundlift/backend/internal/config"
	"github.com/fundlift/backend/internal/core"
	"github.com/fundlift/backend/internal/donation"
	"github.com/fundlift/backend/internal/events"
	"github.com/fundlift/backend/internal/health"
	"github.com/fundlift/backend/internal/middleware"
	"github.com/fundlift/backend/internal/post"
	"github.com/fundlift/backend/internal/project"
	"github.com/fundlift/backend/internal/server"
	"github.com/fundlift/backend/internal/student"
	"github.com/fundlift/backend/internal/user"
	"github.com/fundlift/backend/internal/wallet"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		amqp, pubErr := events.NewAMQPPublisher(
			cfg.Events.URL,
			cfg.Events.Exchange,
		)
		if pubErr != nil {
			logger.Warn("event publisher unavailable, events disabled",
				"error", pubErr,
			)
		} else {
			publisher = amqp
			logger.Info("event publisher connected",
				"exchange", cfg.Events.Exchange,
			)
		}
	}

	activitySvc := activity.NewService(activity.NewRepository(db.DB))

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	studentRepo := student.NewRepository(db.DB)
	studentSvc := student.NewService(db.DB, studentRepo, activitySvc, publisher)
	studentHandler := student.NewHandler(studentSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		userSvc,
		studentSvc,
		redis.Client,
	)
	authHandler := auth.NewHandler(authSvc)

	projectSvc := project.NewService(project.NewRepository(db.DB))
	projectHandler := project.NewHandler(projectSvc)

	postSvc := post.NewService(post.NewRepository(db.DB), studentSvc)
	postHandler := post.NewHandler(postSvc)

	campaignSvc := campaign.NewService(campaign.NewRepository(db.DB))
	campaignHandler := campaign.NewHandler(campaignSvc)

	donationSvc := donation.NewService(
		db.DB,
		donation.NewRepository(db.DB),
		projectSvc,
		postSvc,
		campaignSvc,
		activitySvc,
		publisher,
	)
	donationHandler := donation.NewHandler(donationSvc)

	walletSvc := wallet.NewService(wallet.NewRepository(db.DB), activitySvc)
	walletHandler := wallet.NewHandler(walletSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Stats:      admin.NewStatsRepository(db.DB),
		Students:   studentSvc,
		Activity:   activitySvc,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)
	adminOnly := middleware.RequireAdmin
	verifiedStudentOnly := middleware.RequireVerifiedStudent(studentSvc)

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		studentHandler.RegisterRoutes(r, authenticator, adminOnly)
		projectHandler.RegisterRoutes(r, authenticator, verifiedStudentOnly)
		postHandler.RegisterRoutes(r, authenticator)
		campaignHandler.RegisterRoutes(r, authenticator, adminOnly)
		donationHandler.RegisterRoutes(r, optionalAuth)
		walletHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := publisher.Close(); err != nil {
		logger.Error("event publisher close error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
