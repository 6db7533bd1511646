package dao

import (
	"github.com/Moorthy04/Chat-bot/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationDAO handles conversation-related database operations
type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{db: db}
}

// CreateConversation creates a new conversation with the placeholder title
func (d *ConversationDAO) CreateConversation(userID uint64) (*models.Conversation, error) {
	convo := &models.Conversation{
		ID:     uuid.New(),
		UserID: userID,
		Title:  models.DefaultTitle,
	}
	if err := d.db.Create(convo).Error; err != nil {
		return nil, err
	}
	return convo, nil
}

// GetConversationByIDAndUser retrieves a conversation scoped to its owner.
// A conversation owned by someone else is indistinguishable from a missing one.
func (d *ConversationDAO) GetConversationByIDAndUser(id uuid.UUID, userID uint64) (*models.Conversation, error) {
	var convo models.Conversation
	if err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&convo).Error; err != nil {
		return nil, err
	}
	return &convo, nil
}

// GetConversationsByUserID retrieves all conversations owned by a user,
// most recently updated first
func (d *ConversationDAO) GetConversationsByUserID(userID uint64) ([]models.Conversation, error) {
	var convos []models.Conversation
	if err := d.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&convos).Error; err != nil {
		return nil, err
	}
	return convos, nil
}

// UpdateTitle rewrites a conversation's title
func (d *ConversationDAO) UpdateTitle(id uuid.UUID, title string) error {
	return d.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("title", title).Error
}

// DeleteConversation deletes a conversation and its messages
func (d *ConversationDAO) DeleteConversation(id uuid.UUID, userID uint64) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var convo models.Conversation
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&convo).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&convo).Error
	})
}
