package dao

import (
	"github.com/Moorthy04/Chat-bot/models"
	"gorm.io/gorm"
)

// AttachmentDAO handles attachment-related database operations
type AttachmentDAO struct {
	db *gorm.DB
}

func NewAttachmentDAO(db *gorm.DB) *AttachmentDAO {
	return &AttachmentDAO{db: db}
}

// CreateAttachment records an uploaded file together with its extracted text
func (d *AttachmentDAO) CreateAttachment(userID uint64, filePath, fileName, fileType, extractedText string) (*models.Attachment, error) {
	att := &models.Attachment{
		UserID:        userID,
		FilePath:      filePath,
		FileName:      fileName,
		FileType:      fileType,
		ExtractedText: extractedText,
	}
	if err := d.db.Create(att).Error; err != nil {
		return nil, err
	}
	return att, nil
}

// LinkToMessage attaches the given attachment ids to a message. Ids not owned
// by userID are silently skipped.
func (d *AttachmentDAO) LinkToMessage(ids []uint64, userID uint64, messageID uint64) error {
	return d.db.Model(&models.Attachment{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("message_id", messageID).Error
}

// GetByMessageID retrieves all attachments linked to a message
func (d *AttachmentDAO) GetByMessageID(messageID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := d.db.Where("message_id = ?", messageID).Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// GetAttachmentByIDAndUser retrieves an attachment scoped to its owner
func (d *AttachmentDAO) GetAttachmentByIDAndUser(id, userID uint64) (*models.Attachment, error) {
	var att models.Attachment
	if err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&att).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

// DeleteAttachment deletes an attachment row. The model's AfterDelete hook
// removes the stored file.
func (d *AttachmentDAO) DeleteAttachment(att *models.Attachment) error {
	return d.db.Delete(att).Error
}
