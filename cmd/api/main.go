package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicine-tracker/internal/adapters/druginfo/rxnav"
	"medicine-tracker/internal/adapters/storage/file"
	pg "medicine-tracker/internal/adapters/storage/postgres"
	"medicine-tracker/internal/config"
	"medicine-tracker/internal/middleware"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/router"
	"medicine-tracker/internal/scheduler"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: logger.ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    "medicine-tracker",
	})

	opts := router.Options{
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRate, cfg.RateLimitCapacity),
	}

	var db *sql.DB
	var store *file.Store

	switch {
	case cfg.DBDSN != "":
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := pg.EnsureSchema(ctx, opened); err != nil {
			cancel()
			log.Error("schema setup failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		cancel()
		db = opened
		opts.DB = db
	case cfg.DataDir != "":
		s, err := file.NewStore(cfg.DataDir, log)
		if err != nil {
			log.Error("file storage unavailable", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		store = s
		opts.FileStore = s
	}

	if lookup, err := rxnav.NewClient(cfg.RxNavBaseURL, cfg.RxNavTimeout); err == nil {
		opts.Lookup = lookup
	} else {
		log.Warn("drug lookup disabled", map[string]any{"error": err.Error()})
	}

	handler, svcs := router.NewRouter(opts)

	var reminders *scheduler.Reminders
	if cfg.RemindersEnabled {
		reminders = scheduler.NewReminders(svcs.Medicines, svcs.Settings, nil, log)
		if err := reminders.Start(); err != nil {
			log.Error("reminder scheduler failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)

	if reminders != nil {
		reminders.Stop()
	}
	if store != nil {
		if err := store.Close(); err != nil {
			log.Error("flush on shutdown failed", map[string]any{"error": err.Error()})
		}
	}
	if db != nil {
		_ = db.Close()
	}
}
