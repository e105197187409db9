package websocket

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/campusmind/wellness_backend/models"
	"github.com/campusmind/wellness_backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T) (*Handler, *Hub, *store.MemoryStore) {
	t.Helper()
	hub := NewHub()
	go hub.Run()

	memStore := store.NewMemoryStore()
	memStore.PutUser(models.User{ID: 1, Name: "Ana"})
	memStore.PutUser(models.User{ID: 2, Name: "Bruno"})
	memStore.PutUser(models.User{ID: 3, Name: "Carla"})

	return NewHandler(hub, memStore), hub, memStore
}

func frame(t *testing.T, eventType string, payload interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	require.NoError(t, err)
	return data
}

func payloadMap(t *testing.T, event Event) map[string]interface{} {
	t.Helper()
	payload, ok := event.Payload.(map[string]interface{})
	require.True(t, ok, "payload is not an object")
	return payload
}

func TestJoinChatBroadcastsToOthers(t *testing.T) {
	handler, hub, _ := newTestPipeline(t)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	handler.handleEvent(a, frame(t, "join_chat", map[string]interface{}{"chat_id": 10, "user_id": 1}))
	handler.handleEvent(b, frame(t, "join_chat", map[string]interface{}{"chat_id": 10, "user_id": 2}))

	// A sees B join; B gets nothing for its own join
	event := recvEvent(t, a)
	assert.Equal(t, "user_joined", event.Type)
	assert.Equal(t, float64(2), payloadMap(t, event)["user_id"])
	assertNoEvent(t, b)
}

func TestNewMessagePersistsThenBroadcasts(t *testing.T) {
	handler, hub, memStore := newTestPipeline(t)

	chatID, err := memStore.CreateChat("Study", true, 1, []uint{1, 2, 3}, "", "")
	require.NoError(t, err)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	c := newTestClient(t, hub, handler, "c", 3)
	hub.JoinRoom(a, chatID)
	hub.JoinRoom(b, chatID)
	hub.JoinRoom(c, chatID)

	handler.handleEvent(a, frame(t, "new_message", map[string]interface{}{
		"chat_id": chatID,
		"user_id": 1,
		"content": "hi",
	}))

	// Everyone, the sender included, receives the persisted record
	for _, client := range []*Client{a, b, c} {
		event := recvEvent(t, client)
		require.Equal(t, "new_message", event.Type)
		payload := payloadMap(t, event)
		message, ok := payload["message"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "hi", message["content"])
		assert.NotZero(t, message["id"])
		assert.NotEmpty(t, message["sent_at"])
	}

	// The same record is visible through the store
	messages, err := memStore.ListMessages(chatID, 50, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)
}

func TestNewMessageValidationFailsToOriginOnly(t *testing.T) {
	handler, hub, memStore := newTestPipeline(t)

	chatID, err := memStore.CreateChat("Study", true, 1, []uint{1, 2}, "", "")
	require.NoError(t, err)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	hub.JoinRoom(a, chatID)
	hub.JoinRoom(b, chatID)

	handler.handleEvent(a, frame(t, "new_message", map[string]interface{}{
		"chat_id": chatID,
		"user_id": 1,
	}))

	assert.Equal(t, "error", recvEvent(t, a).Type)
	assertNoEvent(t, b)

	messages, err := memStore.ListMessages(chatID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, messages, "nothing may be persisted on validation failure")
}

func TestNewMessagePersistenceFailureNotBroadcast(t *testing.T) {
	handler, hub, _ := newTestPipeline(t)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	hub.JoinRoom(a, 99)
	hub.JoinRoom(b, 99)

	// Chat 99 does not exist in the store
	handler.handleEvent(a, frame(t, "new_message", map[string]interface{}{
		"chat_id": 99,
		"user_id": 1,
		"content": "hi",
	}))

	assert.Equal(t, "error", recvEvent(t, a).Type)
	assertNoEvent(t, b)
}

func TestMarkAsReadBroadcastsToRoom(t *testing.T) {
	handler, hub, memStore := newTestPipeline(t)

	chatID, err := memStore.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)
	messageID, err := memStore.CreateMessage(chatID, 1, "hi", "text", nil, nil)
	require.NoError(t, err)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	hub.JoinRoom(a, chatID)
	hub.JoinRoom(b, chatID)

	handler.handleEvent(b, frame(t, "mark_as_read", map[string]interface{}{
		"message_id": messageID,
		"chat_id":    chatID,
		"user_id":    2,
	}))

	for _, client := range []*Client{a, b} {
		event := recvEvent(t, client)
		assert.Equal(t, "message_read", event.Type)
		assert.Equal(t, float64(2), payloadMap(t, event)["user_id"])
	}

	message, err := memStore.GetMessage(messageID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusRead, message.Status)
}

func TestMarkAsReadBySenderStillBroadcastsButStateUnchanged(t *testing.T) {
	handler, hub, memStore := newTestPipeline(t)

	chatID, err := memStore.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)
	messageID, err := memStore.CreateMessage(chatID, 1, "hi", "text", nil, nil)
	require.NoError(t, err)

	a := newTestClient(t, hub, handler, "a", 1)
	hub.JoinRoom(a, chatID)

	handler.handleEvent(a, frame(t, "mark_as_read", map[string]interface{}{
		"message_id": messageID,
		"chat_id":    chatID,
		"user_id":    1,
	}))

	// Broadcast goes out regardless; the store keeps the invariant
	assert.Equal(t, "message_read", recvEvent(t, a).Type)
	message, err := memStore.GetMessage(messageID)
	require.NoError(t, err)
	assert.Nil(t, message.ReadAt)
	assert.Equal(t, models.MessageStatusSent, message.Status)
}

func TestTypingIndicatorExcludesSender(t *testing.T) {
	handler, hub, _ := newTestPipeline(t)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	hub.JoinRoom(a, 10)
	hub.JoinRoom(b, 10)

	handler.handleEvent(a, frame(t, "typing", map[string]interface{}{
		"chat_id":   10,
		"user_id":   1,
		"is_typing": true,
	}))

	event := recvEvent(t, b)
	assert.Equal(t, "typing_indicator", event.Type)
	assert.Equal(t, true, payloadMap(t, event)["is_typing"])
	assertNoEvent(t, a)
}

func TestLeaveChatBroadcastsAndStopsDelivery(t *testing.T) {
	handler, hub, _ := newTestPipeline(t)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	hub.JoinRoom(a, 10)
	hub.JoinRoom(b, 10)

	handler.handleEvent(a, frame(t, "leave_chat", map[string]interface{}{"chat_id": 10, "user_id": 1}))

	assert.Equal(t, "user_left", recvEvent(t, b).Type)

	hub.BroadcastToRoom(10, "new_message", nil)
	assert.Equal(t, "new_message", recvEvent(t, b).Type)
	assertNoEvent(t, a)
}

func TestUnknownEventType(t *testing.T) {
	handler, hub, _ := newTestPipeline(t)

	a := newTestClient(t, hub, handler, "a", 1)
	handler.handleEvent(a, frame(t, "bogus", map[string]interface{}{}))

	event := recvEvent(t, a)
	assert.Equal(t, "error", event.Type)
}

func TestMalformedFrame(t *testing.T) {
	handler, hub, _ := newTestPipeline(t)

	a := newTestClient(t, hub, handler, "a", 1)
	handler.handleEvent(a, []byte("{not json"))

	assert.Equal(t, "error", recvEvent(t, a).Type)
}

func TestPerRoomBroadcastOrder(t *testing.T) {
	handler, hub, memStore := newTestPipeline(t)

	chatID, err := memStore.CreateChat("Study", true, 1, []uint{1, 2}, "", "")
	require.NoError(t, err)

	a := newTestClient(t, hub, handler, "a", 1)
	b := newTestClient(t, hub, handler, "b", 2)
	hub.JoinRoom(a, chatID)
	hub.JoinRoom(b, chatID)

	for i := 0; i < 5; i++ {
		handler.handleEvent(a, frame(t, "new_message", map[string]interface{}{
			"chat_id": chatID,
			"user_id": 1,
			"content": fmt.Sprintf("m%d", i),
		}))
	}

	// Deliveries arrive in processing order
	for i := 0; i < 5; i++ {
		event := recvEvent(t, b)
		require.Equal(t, "new_message", event.Type)
		message := payloadMap(t, event)["message"].(map[string]interface{})
		assert.Equal(t, fmt.Sprintf("m%d", i), message["content"])
	}
}
