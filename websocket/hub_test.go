package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, hub *Hub, handler *Handler, id string, userID uint) *Client {
	t.Helper()
	client := &Client{
		ID:      id,
		hub:     hub,
		handler: handler,
		send:    make(chan []byte, 16),
		userID:  userID,
		rooms:   make(map[uint]bool),
	}
	hub.register <- client
	return client
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if ok {
			t.Fatalf("unexpected event: %s", data)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastToRoomReachesAllMembers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(t, hub, nil, "a", 1)
	b := newTestClient(t, hub, nil, "b", 2)
	outsider := newTestClient(t, hub, nil, "c", 3)

	hub.JoinRoom(a, 10)
	hub.JoinRoom(b, 10)

	hub.BroadcastToRoom(10, "new_message", map[string]interface{}{"chat_id": 10})

	assert.Equal(t, "new_message", recvEvent(t, a).Type)
	assert.Equal(t, "new_message", recvEvent(t, b).Type)
	assertNoEvent(t, outsider)
}

func TestBroadcastToOthersExcludesOrigin(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(t, hub, nil, "a", 1)
	b := newTestClient(t, hub, nil, "b", 2)
	hub.JoinRoom(a, 10)
	hub.JoinRoom(b, 10)

	hub.BroadcastToOthers(a, 10, "typing_indicator", map[string]interface{}{"is_typing": true})

	assert.Equal(t, "typing_indicator", recvEvent(t, b).Type)
	assertNoEvent(t, a)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(t, hub, nil, "a", 1)
	b := newTestClient(t, hub, nil, "b", 2)
	hub.JoinRoom(a, 10)
	hub.JoinRoom(b, 10)

	hub.LeaveRoom(a, 10)
	hub.BroadcastToRoom(10, "new_message", nil)

	assert.Equal(t, "new_message", recvEvent(t, b).Type)
	assertNoEvent(t, a)
}

func TestUnregisterCleansAllRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(t, hub, nil, "a", 1)
	b := newTestClient(t, hub, nil, "b", 2)
	hub.JoinRoom(a, 10)
	hub.JoinRoom(a, 11)
	hub.JoinRoom(b, 10)

	hub.unregister <- a

	// The hub closes the session's send channel once cleanup is done
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-a.send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(10, "new_message", nil)
	assert.Equal(t, "new_message", recvEvent(t, b).Type)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.NotContains(t, hub.rooms[10], a)
	_, room11Exists := hub.rooms[11]
	assert.False(t, room11Exists, "empty room should be removed")
}

func TestJoinRoomIdempotent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(t, hub, nil, "a", 1)
	hub.JoinRoom(a, 10)
	hub.JoinRoom(a, 10)

	hub.BroadcastToRoom(10, "new_message", nil)
	assert.Equal(t, "new_message", recvEvent(t, a).Type)
	assertNoEvent(t, a)
}
