package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"laundry/internal/adapters/out/notify"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/staff"
	"laundry/internal/pkg/errs"

	"github.com/hibiken/asynq"
)

// UserDirectory looks up the customer to notify.
type UserDirectory interface {
	Get(ctx context.Context, id kernel.UUID) (*staff.User, error)
}

// Message is one outgoing customer notification.
type Message struct {
	To      string
	Channel string
	Body    string
}

// Sender delivers messages over SMS, e-mail or chat.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log. It stands in for a provider until
// one is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification sent", "channel", msg.Channel, "to", msg.To, "body", msg.Body)
	return nil
}

type ReadyForPickupHandler struct {
	users  UserDirectory
	sender Sender
	logger *slog.Logger
}

func NewReadyForPickupHandler(users UserDirectory, sender Sender, logger *slog.Logger) *ReadyForPickupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadyForPickupHandler{users: users, sender: sender, logger: logger}
}

// ProcessTask prefers the customer's phone and falls back to e-mail.
// Malformed payloads and unknown customers are not retried.
func (h *ReadyForPickupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload notify.ReadyForPickupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	customerID, err := kernel.UUIDFromString(payload.CustomerID)
	if err != nil {
		return fmt.Errorf("customer id: %v: %w", err, asynq.SkipRetry)
	}

	customer, err := h.users.Get(ctx, customerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.Warn("customer vanished before notification", "customer_id", payload.CustomerID, "order_id", payload.OrderID)
		return fmt.Errorf("customer %s: %w", payload.CustomerID, asynq.SkipRetry)
	}
	if err != nil {
		return err
	}

	msg := Message{
		To:      customer.Email(),
		Channel: "email",
		Body:    readyBody(customer, payload),
	}
	if customer.Phone() != "" {
		msg.To = customer.Phone()
		msg.Channel = "sms"
	}

	return h.sender.Send(ctx, msg)
}

func readyBody(customer *staff.User, payload notify.ReadyForPickupPayload) string {
	name := customer.FirstName()
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s, your laundry (bag %s) is ready for pickup.", name, payload.BagNumber)
}
