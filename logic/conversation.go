package logic

import (
	"github.com/Moorthy04/Chat-bot/dao"
	"github.com/Moorthy04/Chat-bot/models"

	"github.com/google/uuid"
)

// ConversationLogic handles conversation-related business logic
type ConversationLogic struct {
	convoDAO   *dao.ConversationDAO
	messageDAO *dao.MessageDAO
}

func NewConversationLogic(
	convoDAO *dao.ConversationDAO,
	messageDAO *dao.MessageDAO,
) *ConversationLogic {
	return &ConversationLogic{
		convoDAO:   convoDAO,
		messageDAO: messageDAO,
	}
}

// CreateConversation creates a new conversation for a user
func (l *ConversationLogic) CreateConversation(userID uint64) (*models.Conversation, error) {
	return l.convoDAO.CreateConversation(userID)
}

// GetConversations retrieves all conversations owned by a user
func (l *ConversationLogic) GetConversations(userID uint64) ([]models.Conversation, error) {
	return l.convoDAO.GetConversationsByUserID(userID)
}

// GetConversationWithMessages retrieves a conversation and its full message
// history, oldest first
func (l *ConversationLogic) GetConversationWithMessages(id uuid.UUID, userID uint64) (*models.Conversation, []models.Message, error) {
	convo, err := l.convoDAO.GetConversationByIDAndUser(id, userID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := l.messageDAO.GetMessagesByConversationID(id)
	if err != nil {
		return nil, nil, err
	}
	return convo, messages, nil
}

// GetConversationMessages retrieves all messages in a conversation the user owns
func (l *ConversationLogic) GetConversationMessages(id uuid.UUID, userID uint64) ([]models.Message, error) {
	if _, err := l.convoDAO.GetConversationByIDAndUser(id, userID); err != nil {
		return nil, err
	}
	return l.messageDAO.GetMessagesByConversationID(id)
}

// DeleteConversation deletes a conversation the user owns
func (l *ConversationLogic) DeleteConversation(id uuid.UUID, userID uint64) error {
	return l.convoDAO.DeleteConversation(id, userID)
}
