package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lenderapp/lender/internal/app"
	"github.com/lenderapp/lender/internal/config"
	"github.com/lenderapp/lender/internal/notify"
	"github.com/lenderapp/lender/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	if cfg.ResendAPIKey == "" {
		logger.Fatal("RESEND_API_KEY is required but not set")
	}
	// Demo mode waives DB_DSN for the API, but the notifier has no
	// in-memory queue to drain.
	if cfg.DBDSN == "" {
		logger.Fatal("DB_DSN is required but not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	store := repository.NewStore(pool)
	sender := notify.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)

	dispatcher := notify.NewDispatcher(store.Notifications(), sender, cfg.PollInterval, logger)
	dispatcher.Run(ctx)
}
