// Package ws pushes committed domain events to outlet and factory boards over
// websockets.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"laundry/internal/pkg/ddd"
)

// Message is what a board receives.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// OutletRoom is the room of everybody watching one outlet.
func OutletRoom(outletID string) string {
	return "outlet:" + outletID
}

// OrganizationRoom is the room of everybody watching a whole tenant, the
// factory floor included.
func OrganizationRoom(organizationID string) string {
	return "organization:" + organizationID
}

type roomMessage struct {
	room    string
	message []byte
}

// Hub keeps the connected boards grouped by room.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	done       chan struct{}

	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws_hub"),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for room, clients := range h.rooms {
				for client := range clients {
					close(client.send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.room] == nil {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[msg.room] {
				select {
				case client.send <- msg.message:
				default:
					h.logger.Warn("slow board dropped", "room", msg.room)
					h.drop(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop removes client and closes its queue. Callers hold mu.
func (h *Hub) drop(client *Client) {
	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
}

// Broadcast queues msg for every client in room. It never blocks: when the
// queue is full or the hub stopped the message is dropped.
func (h *Hub) Broadcast(room string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal board message: %w", err)
	}
	select {
	case h.broadcast <- roomMessage{room: room, message: data}:
	case <-h.done:
	default:
		h.logger.Warn("board queue full, message dropped", "room", room, "type", msg.Type)
	}
	return nil
}

// HandleEvent forwards a scoped domain event to its outlet room and to the
// organization room.
func (h *Hub) HandleEvent(_ context.Context, event ddd.DomainEvent) error {
	scoped, ok := event.(ddd.ScopedEvent)
	if !ok {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}
	msg := Message{Type: event.EventName(), Payload: payload}

	if outlet := scoped.Outlet(); outlet != "" {
		if err := h.Broadcast(OutletRoom(outlet), msg); err != nil {
			return err
		}
	}
	return h.Broadcast(OrganizationRoom(scoped.Organization()), msg)
}

// Clients returns the number of clients in room.
func (h *Hub) Clients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
