// Package notify turns committed order events into queued customer
// notifications.
package notify

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue notifications are enqueued on.
	QueueDefault = "default"
	// TaskReadyForPickup tells a customer their order can be collected.
	TaskReadyForPickup = "notify:ready_for_pickup"
)

// ReadyForPickupPayload is the task body of TaskReadyForPickup.
type ReadyForPickupPayload struct {
	OrganizationID string    `json:"organization_id"`
	OutletID       string    `json:"outlet_id"`
	OrderID        string    `json:"order_id"`
	BagNumber      string    `json:"bag_number"`
	CustomerID     string    `json:"customer_id"`
	ReadyAt        time.Time `json:"ready_at"`
}

func NewReadyForPickupTask(payload ReadyForPickupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReadyForPickup, data), nil
}
