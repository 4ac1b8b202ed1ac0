package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bloodbridge/internal/api/http"
	"github.com/spec-kit/bloodbridge/internal/api/http/handlers"
	"github.com/spec-kit/bloodbridge/internal/auth"
	"github.com/spec-kit/bloodbridge/internal/cache"
	"github.com/spec-kit/bloodbridge/internal/config"
	"github.com/spec-kit/bloodbridge/internal/events"
	"github.com/spec-kit/bloodbridge/internal/observability"
	"github.com/spec-kit/bloodbridge/internal/persistence"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/internal/service"
	"github.com/spec-kit/bloodbridge/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	requestRepo := repository.NewBloodRequestRepository(pool)
	donationRepo := repository.NewDonationRepository(pool)
	creditRepo := repository.NewCreditRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	achievementRepo := repository.NewAchievementRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	statsCache := cache.New(redis.Client, cfg.Cache.StatsTTL(), logger)
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	adminService := service.NewAdminService(reportRepo, userRepo, donationRepo, creditRepo, notificationRepo, dispatcher)
	hospitalService := service.NewHospitalService(reportRepo, requestRepo, donationRepo, userRepo, inventoryRepo, achievementRepo, notificationRepo, dispatcher, logger)
	donorService := service.NewDonorService(userRepo, donationRepo, requestRepo, achievementRepo, notificationRepo, creditRepo)
	donationService := service.NewDonationService(donationRepo, requestRepo, inventoryRepo, reportRepo, statsCache)
	notificationService := service.NewNotificationService(dispatcher, notificationRepo, logger, cfg.Notify)

	worker.StartNotificationWorker(notificationService)

	guard := auth.NewGuard(authService.TokenManager(), logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	authHandler := handlers.NewAuthHandler(authService)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      authHandler,
		Admin:     handlers.NewAdminHandler(adminService),
		Hospital:  handlers.NewHospitalHandler(hospitalService),
		User:      handlers.NewUserHandler(donorService, authHandler),
		Donations: handlers.NewDonationsHandler(donationService),
		Guard:     guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
