// Package worker consumes queued notification tasks.
package worker

import (
	"context"
	"errors"
	"log/slog"

	"laundry/internal/adapters/out/notify"

	"github.com/hibiken/asynq"
)

// Config collects what the worker needs to start.
type Config struct {
	RedisOpts    asynq.RedisClientOpt
	Concurrency  int
	Logger       *slog.Logger
	ReadyHandler *ReadyForPickupHandler
}

// Worker wraps the asynq server.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

func New(cfg Config) (*Worker, error) {
	if cfg.ReadyHandler == nil {
		return nil, errors.New("worker: ready for pickup handler is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			notify.QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(notify.TaskReadyForPickup, cfg.ReadyHandler.ProcessTask)

	return &Worker{server: srv, mux: mux, logger: logger.With("component", "worker")}, nil
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	w.logger.Info("worker started")

	select {
	case <-ctx.Done():
		w.server.Shutdown()
		w.logger.Info("worker stopped")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
