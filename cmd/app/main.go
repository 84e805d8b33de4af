package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry/cmd"
	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/in/ws"
	"laundry/internal/adapters/out/eventbus"
	"laundry/internal/adapters/out/notify"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/redisstore"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/observability"

	"github.com/hibiken/asynq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("laundry api stopped", "error", err)
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

	if err := postgres.Migrate(configs.DSN()); err != nil {
		return err
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	redisClient, err := redisstore.NewClient(ctx, configs.RedisAddr)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: configs.RedisAddr})
	defer func() { _ = queue.Close() }()

	metrics := observability.NewMetrics()
	hub := ws.NewHub(log)
	bus := eventbus.New(log)
	bus.Subscribe("metrics", metrics)
	bus.Subscribe("board", hub)
	bus.Subscribe("notifier", notify.NewNotifier(queue, log), order.EventStatusChanged)

	app, err := cmd.NewCompositionRoot(configs, gormDB, bus, redisstore.NewIdempotencyStore(redisClient))
	if err != nil {
		return err
	}

	jobManager, err := app.CreateJobManager(metrics, log)
	if err != nil {
		return err
	}
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	go hub.Run(ctx)

	return startWebServer(ctx, app, hub, metrics, configs, log)
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	hub *ws.Hub,
	metrics *observability.Metrics,
	configs cmd.Config,
	log *slog.Logger,
) error {
	doc, err := httpin.LoadSpec()
	if err != nil {
		return err
	}

	server := httpin.NewServer(app.HTTPHandlers(), app.Outlets(), hub, metrics, log)
	e, err := server.Echo(doc, httpin.Options{
		RateLimit:       configs.RateLimit,
		RateLimitWindow: configs.RateLimitWindow,
		Development:     configs.Development,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "port", configs.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
