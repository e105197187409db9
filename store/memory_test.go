package store

import (
	"testing"

	"github.com/campusmind/wellness_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	s.PutUser(models.User{ID: 1, Name: "Ana"})
	s.PutUser(models.User{ID: 2, Name: "Bruno"})
	s.PutUser(models.User{ID: 3, Name: "Carla"})
	return s
}

func TestCreateGroupChat(t *testing.T) {
	s := seedStore(t)

	chatID, err := s.CreateChat("Study", true, 1, []uint{1, 2, 3}, "", "")
	require.NoError(t, err)
	require.NotZero(t, chatID)

	participants, err := s.ListParticipants(chatID)
	require.NoError(t, err)
	require.Len(t, participants, 3)

	admins := 0
	for _, p := range participants {
		if p.IsAdmin {
			admins++
			assert.Equal(t, uint(1), p.UserID, "only the creator should be admin")
		}
	}
	assert.Equal(t, 1, admins)
}

func TestGetOrCreatePrivateChatIdempotent(t *testing.T) {
	s := seedStore(t)

	first, err := s.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)
	second, err := s.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different pair gets a different chat
	other, err := s.GetOrCreatePrivateChat(1, 3)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestListParticipantsExcludesLeft(t *testing.T) {
	s := seedStore(t)

	chatID, err := s.CreateChat("Study", true, 1, []uint{1, 2, 3}, "", "")
	require.NoError(t, err)

	require.NoError(t, s.LeaveChat(chatID, 2))

	participants, err := s.ListParticipants(chatID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	for _, p := range participants {
		assert.Nil(t, p.LeftAt)
		assert.NotEqual(t, uint(2), p.UserID)
	}

	member, err := s.IsParticipant(chatID, 2)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestAddParticipantReactivates(t *testing.T) {
	s := seedStore(t)

	chatID, err := s.CreateChat("Study", true, 1, []uint{1, 2}, "", "")
	require.NoError(t, err)

	require.NoError(t, s.LeaveChat(chatID, 2))
	require.NoError(t, s.AddParticipant(chatID, 2, false))

	participants, err := s.ListParticipants(chatID)
	require.NoError(t, err)
	require.Len(t, participants, 2)

	// No duplicate row: leaving again must succeed exactly once
	require.NoError(t, s.LeaveChat(chatID, 2))
	assert.ErrorIs(t, s.LeaveChat(chatID, 2), ErrNotFound)
}

func TestMarkReadRules(t *testing.T) {
	s := seedStore(t)

	chatID, err := s.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)
	messageID, err := s.CreateMessage(chatID, 1, "hi", "text", nil, nil)
	require.NoError(t, err)

	// Sender cannot mark their own message read
	require.NoError(t, s.MarkRead(messageID, 1))
	message, err := s.GetMessage(messageID)
	require.NoError(t, err)
	assert.Nil(t, message.ReadAt)
	assert.Equal(t, models.MessageStatusSent, message.Status)

	// Recipient can
	require.NoError(t, s.MarkRead(messageID, 2))
	message, err = s.GetMessage(messageID)
	require.NoError(t, err)
	require.NotNil(t, message.ReadAt)
	assert.Equal(t, models.MessageStatusRead, message.Status)

	// Idempotent: a second call leaves identical state
	firstReadAt := *message.ReadAt
	require.NoError(t, s.MarkRead(messageID, 2))
	message, err = s.GetMessage(messageID)
	require.NoError(t, err)
	assert.Equal(t, firstReadAt, *message.ReadAt)
	assert.Equal(t, models.MessageStatusRead, message.Status)
}

func TestDeleteMessageOnlyBySender(t *testing.T) {
	s := seedStore(t)

	chatID, err := s.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)
	messageID, err := s.CreateMessage(chatID, 1, "hi", "text", nil, nil)
	require.NoError(t, err)

	// A non-sender can never delete
	assert.ErrorIs(t, s.DeleteMessage(messageID, 2), ErrNotAllowed)
	message, err := s.GetMessage(messageID)
	require.NoError(t, err)
	assert.Nil(t, message.DeletedAt)

	// The sender can, once
	require.NoError(t, s.DeleteMessage(messageID, 1))
	_, err = s.GetMessage(messageID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteMessage(messageID, 1), ErrNotAllowed)
}

func TestListMessagesPagination(t *testing.T) {
	s := seedStore(t)

	chatID, err := s.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three", "four", "five"} {
		_, err := s.CreateMessage(chatID, 1, content, "text", nil, nil)
		require.NoError(t, err)
	}

	page1, err := s.ListMessages(chatID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "four", page1[0].Content)
	assert.Equal(t, "five", page1[1].Content)

	page2, err := s.ListMessages(chatID, 2, page1[0].ID)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "two", page2[0].Content)
	assert.Equal(t, "three", page2[1].Content)

	// No overlap, chronological when concatenated oldest-first
	seen := map[uint]bool{}
	var combined []uint
	for _, m := range append(page2, page1...) {
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
		combined = append(combined, m.ID)
	}
	for i := 1; i < len(combined); i++ {
		assert.Less(t, combined[i-1], combined[i])
	}
}

func TestListMessagesExcludesDeleted(t *testing.T) {
	s := seedStore(t)

	chatID, err := s.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)
	keep, err := s.CreateMessage(chatID, 1, "keep", "text", nil, nil)
	require.NoError(t, err)
	gone, err := s.CreateMessage(chatID, 1, "gone", "text", nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteMessage(gone, 1))

	messages, err := s.ListMessages(chatID, 50, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, keep, messages[0].ID)
}

func TestListChatsForUser(t *testing.T) {
	s := seedStore(t)

	groupID, err := s.CreateChat("Study", true, 1, []uint{1, 2, 3}, "", "")
	require.NoError(t, err)
	privateID, err := s.GetOrCreatePrivateChat(1, 2)
	require.NoError(t, err)

	// Activity in the private chat puts it first for user 2, with one unread
	_, err = s.CreateMessage(privateID, 1, "hola", "text", nil, nil)
	require.NoError(t, err)

	chats, err := s.ListChatsForUser(2)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, privateID, chats[0].ID)
	assert.Equal(t, int64(1), chats[0].UnreadCount)
	assert.Equal(t, "hola", chats[0].LastMessage)
	assert.Equal(t, "Ana", chats[0].LastMessageSender)
	assert.Equal(t, groupID, chats[1].ID)
	assert.Equal(t, int64(0), chats[1].UnreadCount)

	// User 3 only belongs to the group
	chats, err = s.ListChatsForUser(3)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, groupID, chats[0].ID)

	// The sender's own unsent-read message is not unread for them
	chats, err = s.ListChatsForUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), chats[0].UnreadCount)
}

func TestCreateMessageUnknownChat(t *testing.T) {
	s := seedStore(t)

	_, err := s.CreateMessage(42, 1, "hi", "text", nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
