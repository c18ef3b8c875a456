package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/app"
	"github.com/lenderapp/lender/internal/config"
	"github.com/lenderapp/lender/internal/controller"
	"github.com/lenderapp/lender/internal/repository"
	"github.com/lenderapp/lender/internal/repository/memory"
	"github.com/lenderapp/lender/internal/service"
	"github.com/lenderapp/lender/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	jwtSecret := cfg.JWTSecret

	if cfg.DemoMode {
		logger.Warn("Running in demo mode with the in-memory store; data is not persisted")
		memStore := memory.NewStore()
		memory.Seed(memStore)
		store = memStore
		if jwtSecret == "" {
			jwtSecret = "demo-secret"
		}
	} else {
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("Failed to create connection pool", zap.Error(err))
		}
		defer pool.Close()

		migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
		if err != nil {
			logger.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		migrator.Close()

		store = repository.NewStore(pool)
	}

	slotService := service.NewSlotService(store, logger)
	bookingService := service.NewBookingService(store, logger)
	adminService := service.NewAdminService(store, logger)

	handler := controller.NewHandler(slotService, bookingService, adminService, logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(jwtSecret),
	}

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
