package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/venue-booking-service/internal/api/http"
	"github.com/spec-kit/venue-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/venue-booking-service/internal/config"
	"github.com/spec-kit/venue-booking-service/internal/events"
	"github.com/spec-kit/venue-booking-service/internal/observability"
	"github.com/spec-kit/venue-booking-service/internal/persistence"
	"github.com/spec-kit/venue-booking-service/internal/repository"
	"github.com/spec-kit/venue-booking-service/internal/service"
	"github.com/spec-kit/venue-booking-service/internal/worker"
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
	venueRepo := repository.NewVenueRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		VenueRepo:   venueRepo,
		Dispatcher:  dispatcher,
	})
	availabilityService := service.NewAvailabilityService(bookingRepo, redis, logger, cfg.Availability)
	availabilityService.RegisterHandlers(dispatcher)

	userService := service.NewUserService(userRepo)
	venueService := service.NewVenueService(venueRepo, userRepo, dispatcher)
	custodianService := service.NewCustodianService(userRepo, venueRepo, bookingService)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Bookings:   handlers.NewBookingsHandler(bookingService, availabilityService),
		Venues:     handlers.NewVenuesHandler(venueService, custodianService),
		Users:      handlers.NewUsersHandler(userService),
		Custodians: handlers.NewCustodiansHandler(custodianService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("service started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("env", cfg.App.Env),
	)

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
