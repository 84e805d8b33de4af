package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"laundry/cmd"
	"laundry/internal/adapters/in/worker"

	"github.com/hibiken/asynq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("laundry worker stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := cmd.NewLogger(configs)
	slog.SetDefault(log)

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	// Tasks only read users, so no publisher or idempotency store is wired.
	app, err := cmd.NewCompositionRoot(configs, gormDB, nil, nil)
	if err != nil {
		return err
	}

	w, err := worker.New(worker.Config{
		RedisOpts:    asynq.RedisClientOpt{Addr: configs.RedisAddr},
		Concurrency:  configs.WorkerConcurrency,
		Logger:       log,
		ReadyHandler: app.CreateReadyForPickupHandler(worker.LogSender{Logger: log}, log),
	})
	if err != nil {
		return err
	}

	return w.Run(ctx)
}
