package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/ddd"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier subscribes to order status changes and enqueues a notification
// when an order with a known customer becomes ready for pickup.
type Notifier struct {
	queue  Enqueuer
	logger *slog.Logger
}

func NewNotifier(queue Enqueuer, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{queue: queue, logger: logger.With("component", "notifier")}
}

// HandleEvent enqueues at most one ready for pickup task per order; the task
// id is derived from the order so a repeated event is a no-op.
func (n *Notifier) HandleEvent(ctx context.Context, event ddd.DomainEvent) error {
	changed, ok := event.(order.StatusChangedEvent)
	if !ok || changed.To != order.StatusReadyForPickup.String() {
		return nil
	}
	if changed.CustomerID == "" {
		n.logger.Debug("walk-in order ready, nobody to notify", "order_id", changed.OrderID)
		return nil
	}

	task, err := NewReadyForPickupTask(ReadyForPickupPayload{
		OrganizationID: changed.OrganizationID,
		OutletID:       changed.OutletID,
		OrderID:        changed.OrderID,
		BagNumber:      changed.BagNumber,
		CustomerID:     changed.CustomerID,
		ReadyAt:        changed.OccurredAt(),
	})
	if err != nil {
		return fmt.Errorf("build ready for pickup task: %w", err)
	}

	_, err = n.queue.EnqueueContext(ctx, task,
		asynq.Queue(QueueDefault),
		asynq.TaskID(readyTaskID(changed.OrderID)),
		asynq.MaxRetry(5),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue ready for pickup: %w", err)
	}

	n.logger.Info("ready for pickup notification queued", "order_id", changed.OrderID)
	return nil
}

func readyTaskID(orderID string) string {
	return "ready:" + orderID
}
