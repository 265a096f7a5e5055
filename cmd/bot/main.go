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

	"practice_tracker/internal/api"
	"practice_tracker/internal/api/handler"
	"practice_tracker/internal/app/service"
	"practice_tracker/internal/app/worker"
	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/repository"
	"practice_tracker/internal/platform/config"
	"practice_tracker/internal/platform/database"
	"practice_tracker/internal/platform/kv"
	"practice_tracker/internal/platform/telegram"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Bot exited with error", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Initialize logging
	logger := slog.New(common.NewTraceHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.SetDefault(logger)
	logger.Info("Configuration loaded", "workers", cfg.BotWorkers, "timezone", cfg.ReportLocation.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize database
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// 4. Initialize Redis, falling back to in-process form sessions
	rdb, err := kv.ConnectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer kv.CloseRedis(rdb)

	checks := map[string]api.HealthCheck{"database": db.PingContext}
	var sessionRepo repository.SessionRepository
	if rdb != nil {
		sessionRepo = repository.NewRedisSessionRepository(rdb, cfg.FormSessionTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		logger.Warn("REDIS_ADDR not set, form sessions are kept in memory")
		sessionRepo = repository.NewMemorySessionRepository(cfg.FormSessionTTL)
	}

	// 5. Initialize repositories
	userRepo := repository.NewPgUserRepository(db)
	submissionRepo := repository.NewPgSubmissionRepository(db)

	// 6. Initialize Telegram client
	bot, err := telegram.NewClient(cfg.BotToken, cfg.BotDebug, logger)
	if err != nil {
		return err
	}

	// 7. Initialize services
	userService := service.NewUserService(userRepo, logger)
	submissionService := service.NewSubmissionService(submissionRepo, userService, logger)
	intakeService := service.NewIntakeService(sessionRepo, submissionService, logger)
	statusService := service.NewStatusService(userRepo, submissionRepo, bot, cfg.ReportLocation, logger)

	// 8. Initialize command router and dispatcher
	router := api.NewCommandRouter(
		bot,
		handler.NewStartHandler(userService),
		handler.NewSubmissionHandler(intakeService),
		handler.NewStatusHandler(statusService),
		logger,
	)
	dispatcher := worker.NewDispatcher(router, cfg.BotWorkers, logger)

	// 9. Initialize ops HTTP server
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewRouter(checks),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Run until interrupted, then shut down gracefully
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Ops server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// A closed update stream fails the group so the ops server stops too.
		return dispatcher.Run(gctx, bot.Updates(gctx))
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Bot stopped gracefully")
	return nil
}
