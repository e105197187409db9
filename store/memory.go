package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/campusmind/wellness_backend/models"
)

// MemoryStore is an in-memory ChatStore with the same conditional-update
// semantics as GormStore. It backs tests and carries no durability.
type MemoryStore struct {
	mu            sync.RWMutex
	chats         map[uint]*models.Chat
	participants  map[uint][]*models.ChatParticipant
	messages      map[uint]*models.Message
	users         map[uint]models.User
	nextChatID    uint
	nextMessageID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chats:        make(map[uint]*models.Chat),
		participants: make(map[uint][]*models.ChatParticipant),
		messages:     make(map[uint]*models.Message),
		users:        make(map[uint]models.User),
	}
}

// PutUser registers a user record so message previews can carry sender names.
func (s *MemoryStore) PutUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *MemoryStore) CreateChat(name string, isGroup bool, creatorID uint, participantIDs []uint, theme, photoURL string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.nextChatID++
	chat := &models.Chat{
		ID:            s.nextChatID,
		Name:          name,
		IsGroup:       isGroup,
		Theme:         theme,
		PhotoURL:      photoURL,
		CreatedBy:     creatorID,
		CreatedAt:     now,
		LastMessageAt: now,
	}
	s.chats[chat.ID] = chat

	s.participants[chat.ID] = append(s.participants[chat.ID], &models.ChatParticipant{
		ChatID:   chat.ID,
		UserID:   creatorID,
		IsAdmin:  isGroup,
		JoinedAt: now,
		Status:   "active",
	})
	for _, id := range participantIDs {
		if id == creatorID {
			continue
		}
		s.participants[chat.ID] = append(s.participants[chat.ID], &models.ChatParticipant{
			ChatID:   chat.ID,
			UserID:   id,
			JoinedAt: now,
			Status:   "active",
		})
	}
	return chat.ID, nil
}

func (s *MemoryStore) GetOrCreatePrivateChat(userA, userB uint) (uint, error) {
	s.mu.RLock()
	for id, chat := range s.chats {
		if chat.IsGroup {
			continue
		}
		var hasA, hasB bool
		for _, p := range s.participants[id] {
			if p.UserID == userA {
				hasA = true
			}
			if p.UserID == userB {
				hasB = true
			}
		}
		if hasA && hasB {
			s.mu.RUnlock()
			return id, nil
		}
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.nextChatID++
	chat := &models.Chat{
		ID:            s.nextChatID,
		Name:          fmt.Sprintf("Private chat %d-%d", userA, userB),
		CreatedBy:     userA,
		CreatedAt:     now,
		LastMessageAt: now,
	}
	s.chats[chat.ID] = chat
	for _, id := range []uint{userA, userB} {
		s.participants[chat.ID] = append(s.participants[chat.ID], &models.ChatParticipant{
			ChatID:   chat.ID,
			UserID:   id,
			JoinedAt: now,
			Status:   "active",
		})
	}
	return chat.ID, nil
}

func (s *MemoryStore) ListChatsForUser(userID uint) ([]ChatSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := []ChatSummary{}
	for id, chat := range s.chats {
		if !s.activeMember(id, userID) {
			continue
		}

		summary := ChatSummary{
			ID:            chat.ID,
			Name:          chat.Name,
			IsGroup:       chat.IsGroup,
			Theme:         chat.Theme,
			PhotoURL:      chat.PhotoURL,
			LastMessageAt: chat.LastMessageAt,
		}

		var last *models.Message
		for _, m := range s.messages {
			if m.ChatID != id || m.DeletedAt != nil {
				continue
			}
			if m.UserID != userID && m.ReadAt == nil {
				summary.UnreadCount++
			}
			if last == nil || m.ID > last.ID {
				last = m
			}
		}
		if last != nil {
			summary.LastMessage = last.Content
			summary.LastMessageSender = s.users[last.UserID].Name
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastMessageAt.Equal(summaries[j].LastMessageAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].LastMessageAt.After(summaries[j].LastMessageAt)
	})
	return summaries, nil
}

func (s *MemoryStore) GetChat(chatID uint) (*models.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *chat
	return &copied, nil
}

func (s *MemoryStore) AddParticipant(chatID, userID uint, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[chatID]; !ok {
		return ErrNotFound
	}
	for _, p := range s.participants[chatID] {
		if p.UserID == userID {
			p.LeftAt = nil
			p.Status = "active"
			return nil
		}
	}
	s.participants[chatID] = append(s.participants[chatID], &models.ChatParticipant{
		ChatID:   chatID,
		UserID:   userID,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now(),
		Status:   "active",
	})
	return nil
}

func (s *MemoryStore) LeaveChat(chatID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.participants[chatID] {
		if p.UserID == userID && p.LeftAt == nil {
			now := time.Now()
			p.LeftAt = &now
			p.Status = "left"
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) ListParticipants(chatID uint) ([]models.ChatParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participants := []models.ChatParticipant{}
	for _, p := range s.participants[chatID] {
		if p.LeftAt != nil {
			continue
		}
		copied := *p
		copied.User = s.users[p.UserID]
		participants = append(participants, copied)
	}
	return participants, nil
}

func (s *MemoryStore) IsParticipant(chatID, userID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeMember(chatID, userID), nil
}

func (s *MemoryStore) CreateMessage(chatID, userID uint, content, messageType string, fileURL *string, fileSize *int64) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatID]
	if !ok {
		return 0, ErrNotFound
	}
	if messageType == "" {
		messageType = "text"
	}

	now := time.Now()
	s.nextMessageID++
	message := &models.Message{
		ID:          s.nextMessageID,
		ChatID:      chatID,
		UserID:      userID,
		Content:     content,
		MessageType: messageType,
		FileURL:     fileURL,
		FileSize:    fileSize,
		SentAt:      now,
		Status:      models.MessageStatusSent,
	}
	s.messages[message.ID] = message
	chat.LastMessageAt = now
	return message.ID, nil
}

func (s *MemoryStore) GetMessage(messageID uint) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	message, ok := s.messages[messageID]
	if !ok || message.DeletedAt != nil {
		return nil, ErrNotFound
	}
	copied := *message
	copied.User = s.users[message.UserID]
	return &copied, nil
}

func (s *MemoryStore) ListMessages(chatID uint, limit int, beforeID uint) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	page := []models.Message{}
	for _, m := range s.messages {
		if m.ChatID != chatID || m.DeletedAt != nil {
			continue
		}
		if beforeID > 0 && m.ID >= beforeID {
			continue
		}
		copied := *m
		copied.User = s.users[m.UserID]
		page = append(page, copied)
	}

	sort.Slice(page, func(i, j int) bool { return page[i].ID < page[j].ID })
	if len(page) > limit {
		page = page[len(page)-limit:]
	}
	return page, nil
}

func (s *MemoryStore) MarkRead(messageID, readerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, ok := s.messages[messageID]
	if !ok || message.DeletedAt != nil || message.UserID == readerID || message.ReadAt != nil {
		return nil
	}
	now := time.Now()
	message.ReadAt = &now
	message.Status = models.MessageStatusRead
	return nil
}

func (s *MemoryStore) DeleteMessage(messageID, requesterID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, ok := s.messages[messageID]
	if !ok || message.UserID != requesterID || message.DeletedAt != nil {
		return ErrNotAllowed
	}
	now := time.Now()
	message.DeletedAt = &now
	return nil
}

func (s *MemoryStore) activeMember(chatID, userID uint) bool {
	for _, p := range s.participants[chatID] {
		if p.UserID == userID && p.LeftAt == nil {
			return true
		}
	}
	return false
}
