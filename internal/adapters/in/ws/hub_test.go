package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/ddd"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockClient(hub *Hub, room string) *Client {
	return &Client{
		hub:  hub,
		room: room,
		send: make(chan []byte, 256),
	}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("client did not receive a message")
		return Message{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected message %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func statusChanged() order.StatusChangedEvent {
	return order.StatusChangedEvent{
		BaseEvent: ddd.NewBaseEvent(order.EventStatusChanged, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
		Scope:     ddd.Scope{OrganizationID: "org-1", OutletID: "outlet-1"},
		OrderID:   "order-1",
		From:      "received",
		To:        "awaiting_pickup",
	}
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := runHub(t)
	client := mockClient(hub, OutletRoom("outlet-1"))

	hub.register <- client
	assert.Eventually(t, func() bool { return hub.Clients(OutletRoom("outlet-1")) == 1 }, time.Second, 5*time.Millisecond)

	hub.unregister <- client
	assert.Eventually(t, func() bool { return hub.Clients(OutletRoom("outlet-1")) == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open)
}

func TestHub_HandleEvent_RoutesByScope(t *testing.T) {
	hub := runHub(t)
	outletBoard := mockClient(hub, OutletRoom("outlet-1"))
	otherOutlet := mockClient(hub, OutletRoom("outlet-2"))
	factory := mockClient(hub, OrganizationRoom("org-1"))
	otherTenant := mockClient(hub, OrganizationRoom("org-2"))
	for _, c := range []*Client{outletBoard, otherOutlet, factory, otherTenant} {
		hub.register <- c
	}

	require.NoError(t, hub.HandleEvent(context.Background(), statusChanged()))

	for _, c := range []*Client{outletBoard, factory} {
		msg := receive(t, c)
		assert.Equal(t, order.EventStatusChanged, msg.Type)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, "order-1", payload["order_id"])
		assert.Equal(t, "awaiting_pickup", payload["to"])
	}
	assertSilent(t, otherOutlet)
	assertSilent(t, otherTenant)
}

func TestHub_HandleEvent_IgnoresUnscopedEvents(t *testing.T) {
	hub := runHub(t)
	board := mockClient(hub, OrganizationRoom(""))
	hub.register <- board

	require.NoError(t, hub.HandleEvent(context.Background(), ddd.NewBaseEvent("x", time.Now())))

	assertSilent(t, board)
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := mockClient(hub, OutletRoom("outlet-1"))
	hub.register <- client
	cancel()
	<-stopped

	_, open := <-client.send
	assert.False(t, open)
	assert.NoError(t, hub.Broadcast(OutletRoom("outlet-1"), Message{Type: "late"}))
}

func TestServe_DeliversOverWebsocket(t *testing.T) {
	hub := runHub(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, OutletRoom("outlet-1"))
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.Clients(OutletRoom("outlet-1")) == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hub.HandleEvent(context.Background(), statusChanged()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, order.EventStatusChanged, msg.Type)
}
