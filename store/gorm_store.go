package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusmind/wellness_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements ChatStore on top of a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateChat inserts the chat and all participant rows in one transaction.
// The creator always becomes a participant and, for group chats, its admin.
func (s *GormStore) CreateChat(name string, isGroup bool, creatorID uint, participantIDs []uint, theme, photoURL string) (uint, error) {
	now := time.Now()
	chat := models.Chat{
		Name:          name,
		IsGroup:       isGroup,
		Theme:         theme,
		PhotoURL:      photoURL,
		CreatedBy:     creatorID,
		CreatedAt:     now,
		LastMessageAt: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}

		participants := []models.ChatParticipant{{
			ChatID:   chat.ID,
			UserID:   creatorID,
			IsAdmin:  isGroup,
			JoinedAt: now,
			Status:   "active",
		}}
		for _, id := range participantIDs {
			if id == creatorID {
				continue
			}
			participants = append(participants, models.ChatParticipant{
				ChatID:   chat.ID,
				UserID:   id,
				JoinedAt: now,
				Status:   "active",
			})
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return 0, err
	}
	return chat.ID, nil
}

// GetOrCreatePrivateChat finds the non-group chat both users belong to, or
// creates one. The existence check and the insert are not atomic, so two
// concurrent calls for the same pair may create two chats; accepted.
func (s *GormStore) GetOrCreatePrivateChat(userA, userB uint) (uint, error) {
	var chatID uint
	err := s.db.Table("chats").
		Select("chats.id").
		Joins("JOIN chat_participants cp1 ON cp1.chat_id = chats.id AND cp1.user_id = ?", userA).
		Joins("JOIN chat_participants cp2 ON cp2.chat_id = chats.id AND cp2.user_id = ?", userB).
		Where("chats.is_group = ?", false).
		Limit(1).
		Scan(&chatID).Error
	if err != nil {
		return 0, err
	}
	if chatID != 0 {
		return chatID, nil
	}

	now := time.Now()
	chat := models.Chat{
		Name:          fmt.Sprintf("Private chat %d-%d", userA, userB),
		IsGroup:       false,
		CreatedBy:     userA,
		CreatedAt:     now,
		LastMessageAt: now,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		participants := []models.ChatParticipant{
			{ChatID: chat.ID, UserID: userA, JoinedAt: now, Status: "active"},
			{ChatID: chat.ID, UserID: userB, JoinedAt: now, Status: "active"},
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return 0, err
	}
	return chat.ID, nil
}

// ListChatsForUser returns the user's active chats ordered by last activity,
// each with an unread count and last-message preview.
func (s *GormStore) ListChatsForUser(userID uint) ([]ChatSummary, error) {
	var memberships []models.ChatParticipant
	if err := s.db.Where("user_id = ? AND left_at IS NULL", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	summaries := []ChatSummary{}
	if len(memberships) == 0 {
		return summaries, nil
	}

	chatIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		chatIDs = append(chatIDs, m.ChatID)
	}

	var chats []models.Chat
	if err := s.db.Where("id IN ?", chatIDs).Order("last_message_at DESC").Find(&chats).Error; err != nil {
		return nil, err
	}

	for _, chat := range chats {
		var unread int64
		s.db.Model(&models.Message{}).
			Where("chat_id = ? AND user_id <> ? AND read_at IS NULL AND deleted_at IS NULL", chat.ID, userID).
			Count(&unread)

		summary := ChatSummary{
			ID:            chat.ID,
			Name:          chat.Name,
			IsGroup:       chat.IsGroup,
			Theme:         chat.Theme,
			PhotoURL:      chat.PhotoURL,
			LastMessageAt: chat.LastMessageAt,
			UnreadCount:   unread,
		}

		var last models.Message
		if err := s.db.Where("chat_id = ? AND deleted_at IS NULL", chat.ID).
			Order("id DESC").
			Preload("User").
			First(&last).Error; err == nil {
			summary.LastMessage = last.Content
			summary.LastMessageSender = last.User.Name
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *GormStore) GetChat(chatID uint) (*models.Chat, error) {
	var chat models.Chat
	if err := s.db.First(&chat, chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// AddParticipant inserts a membership or, if the user left earlier,
// reactivates the existing row.
func (s *GormStore) AddParticipant(chatID, userID uint, isAdmin bool) error {
	participant := models.ChatParticipant{
		ChatID:   chatID,
		UserID:   userID,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now(),
		Status:   "active",
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chat_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"left_at": nil,
			"status":  "active",
		}),
	}).Create(&participant).Error
}

func (s *GormStore) LeaveChat(chatID, userID uint) error {
	result := s.db.Model(&models.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ? AND left_at IS NULL", chatID, userID).
		Updates(map[string]interface{}{
			"left_at": time.Now(),
			"status":  "left",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListParticipants returns active memberships only.
func (s *GormStore) ListParticipants(chatID uint) ([]models.ChatParticipant, error) {
	var participants []models.ChatParticipant
	err := s.db.Where("chat_id = ? AND left_at IS NULL", chatID).
		Preload("User").
		Find(&participants).Error
	return participants, err
}

func (s *GormStore) IsParticipant(chatID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ? AND left_at IS NULL", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateMessage inserts the message and bumps the chat's last activity
// timestamp; both succeed or both roll back.
func (s *GormStore) CreateMessage(chatID, userID uint, content, messageType string, fileURL *string, fileSize *int64) (uint, error) {
	if messageType == "" {
		messageType = "text"
	}
	now := time.Now()
	message := models.Message{
		ChatID:      chatID,
		UserID:      userID,
		Content:     content,
		MessageType: messageType,
		FileURL:     fileURL,
		FileSize:    fileSize,
		SentAt:      now,
		Status:      models.MessageStatusSent,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Chat{}).
			Where("id = ?", chatID).
			Update("last_message_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return message.ID, nil
}

func (s *GormStore) GetMessage(messageID uint) (*models.Message, error) {
	var message models.Message
	err := s.db.Where("id = ? AND deleted_at IS NULL", messageID).
		Preload("User").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// ListMessages returns up to limit messages oldest-first. Pagination uses the
// message id as cursor (strictly less than beforeID) to avoid timestamp ties.
func (s *GormStore) ListMessages(chatID uint, limit int, beforeID uint) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Where("chat_id = ? AND deleted_at IS NULL", chatID)
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}

	var messages []models.Message
	err := query.Order("id DESC").Limit(limit).Preload("User").Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkRead sets the read timestamp unless the reader is the sender or the
// message is already read or deleted. Matching no rows is a no-op, not an
// error.
func (s *GormStore) MarkRead(messageID, readerID uint) error {
	return s.db.Model(&models.Message{}).
		Where("id = ? AND user_id <> ? AND read_at IS NULL AND deleted_at IS NULL", messageID, readerID).
		Updates(map[string]interface{}{
			"read_at": time.Now(),
			"status":  models.MessageStatusRead,
		}).Error
}

// DeleteMessage soft-deletes, but only for the original sender.
func (s *GormStore) DeleteMessage(messageID, requesterID uint) error {
	result := s.db.Model(&models.Message{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", messageID, requesterID).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotAllowed
	}
	return nil
}
