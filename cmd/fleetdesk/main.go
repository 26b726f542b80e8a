package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fleetdesk/fleetdesk/internal/app"
	"github.com/fleetdesk/fleetdesk/internal/auth"
	"github.com/fleetdesk/fleetdesk/internal/dashboard"
	"github.com/fleetdesk/fleetdesk/internal/observability"
	"github.com/fleetdesk/fleetdesk/internal/platform/cache"
	"github.com/fleetdesk/fleetdesk/internal/rental/agencies"
	"github.com/fleetdesk/fleetdesk/internal/rental/bookings"
	"github.com/fleetdesk/fleetdesk/internal/rental/calendar"
	"github.com/fleetdesk/fleetdesk/internal/rental/cars"
	"github.com/fleetdesk/fleetdesk/internal/rental/clients"
	"github.com/fleetdesk/fleetdesk/internal/rental/faqs"
	"github.com/fleetdesk/fleetdesk/internal/rental/transactions"
	"github.com/fleetdesk/fleetdesk/internal/shared"
	"github.com/fleetdesk/fleetdesk/internal/users"
	"github.com/fleetdesk/fleetdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "fleetdesk_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()

	auditClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := auditClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	directory, err := auth.NewDirectory()
	if err != nil {
		logger.Error("seed directory", slog.Any("error", err))
		os.Exit(1)
	}
	authService := auth.NewService(directory)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager, auditClient, metrics)

	carsService := cars.NewService(cars.NewRepository())
	carsHandler := cars.NewHandler(logger, carsService)

	bookingsService := bookings.NewService(bookings.NewRepository())
	bookingsHandler := bookings.NewHandler(logger, bookingsService)
	calendarHandler := calendar.NewHandler(logger, bookingsService)

	clientsService := clients.NewService(clients.NewRepository())
	clientsHandler := clients.NewHandler(logger, clientsService)

	agenciesService := agencies.NewService(agencies.NewRepository())
	agenciesHandler := agencies.NewHandler(logger, agenciesService)

	transactionsService := transactions.NewService(transactions.NewRepository())
	transactionsHandler := transactions.NewHandler(logger, transactionsService)

	faqHandler := faqs.NewHandler(logger, faqs.NewRepository())

	usersService := users.NewService(directory)
	usersHandler := users.NewHandler(logger, usersService)

	dashboardService := dashboard.NewService(carsService, bookingsService, transactionsService)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, redisClient)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		CSRFManager:         csrfManager,
		AuthHandler:         authHandler,
		DashboardHandler:    dashboardHandler,
		UsersHandler:        usersHandler,
		AgenciesHandler:     agenciesHandler,
		CarsHandler:         carsHandler,
		ClientsHandler:      clientsHandler,
		BookingsHandler:     bookingsHandler,
		CalendarHandler:     calendarHandler,
		TransactionsHandler: transactionsHandler,
		FAQHandler:          faqHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
