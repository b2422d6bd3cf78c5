package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtracker/internal/app"
	"jobtracker/internal/config"
	"jobtracker/internal/database"
	apphttp "jobtracker/internal/http"
	"jobtracker/internal/http/handlers"
	"jobtracker/internal/http/metrics"
	httpmw "jobtracker/internal/http/middleware"
	"jobtracker/internal/integration/notion"
	"jobtracker/internal/integration/posting"
	"jobtracker/internal/observability"
	"jobtracker/internal/repository/sqlstore"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := database.Open(ctx, database.Config{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			return err
		}
	}
	store := sqlstore.New(db, dialect)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Error("redis unavailable, using in-memory rate limiter", slog.String("error", err.Error()))
			redisClient = nil
		}
		cancel()
	}
	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if redisClient != nil {
		limiter = httpmw.NewRedisLimiter(redisClient)
	}

	var exporter notion.Exporter
	if cfg.NotionEnabled() {
		exporter = notion.NewClient(cfg.NotionToken, cfg.NotionDatabaseID)
	}
	var fetcher posting.Fetcher = posting.NewClient(cfg.PostingFetchTimeout)
	if redisClient != nil {
		fetcher = posting.NewCachedFetcher(fetcher, redisClient, cfg.PostingCacheTTL)
	}

	clock := app.SystemClock(cfg.TimeZone)
	authService := app.NewAuthService(store, logger, cfg.SessionTTL)
	companyService := app.NewCompanyService(store)
	contactService := app.NewContactService(store)
	jobService := app.NewJobService(store, clock)
	interviewService := app.NewInterviewService(store, clock)
	messageService := app.NewMessageService(store, clock)
	taskService := app.NewTaskService(store, clock)
	calendarService := app.NewCalendarService(store, clock)
	dashboardService := app.NewDashboardService(store, clock)
	importService := app.NewImportService(store, fetcher, logger)
	exportService := app.NewExportService(store, exporter, logger)

	if err := authService.PurgeExpired(ctx); err != nil {
		logger.Error("failed to purge expired sessions", slog.String("error", err.Error()))
	}

	collector := metrics.NewCollector()
	router := apphttp.NewRouter(apphttp.RouterDependencies{
		SessionHandler:   handlers.NewSessionHandler(authService, cfg.SessionCookieSecure),
		DashboardHandler: handlers.NewDashboardHandler(dashboardService, clock),
		CalendarHandler:  handlers.NewCalendarHandler(calendarService),
		CompanyHandler:   handlers.NewCompanyHandler(companyService),
		ContactHandler:   handlers.NewContactHandler(contactService, companyService),
		JobHandler:       handlers.NewJobHandler(jobService, companyService, contactService, importService, exportService, clock),
		InterviewHandler: handlers.NewInterviewHandler(interviewService, clock),
		MessageHandler:   handlers.NewMessageHandler(messageService, clock),
		TaskHandler:      handlers.NewTaskHandler(taskService, clock),
		HealthHandler:    handlers.NewHealthHandler(db),
		AuthMiddleware:   httpmw.NewAuthMiddleware(authService, apphttp.LoginPath),
		Limiter:          limiter,
		LoginPerMinute:   cfg.LoginRateLimitPerMin,
		Metrics:          collector,
		RequestTimeout:   cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api started", slog.String("addr", server.Addr), slog.String("db_driver", cfg.DBDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
