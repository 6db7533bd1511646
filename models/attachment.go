package models

import (
	"log"
	"os"
	"time"

	"gorm.io/gorm"
)

// Attachment represents an uploaded file. MessageID stays null until the file
// is referenced by a chat request, which links it to the user message it
// accompanies.
type Attachment struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64    `gorm:"not null;index" json:"user_id"`
	MessageID     *uint64   `gorm:"index" json:"message_id"`
	FilePath      string    `gorm:"not null" json:"-"`
	FileName      string    `gorm:"not null" json:"file_name"`
	FileType      string    `gorm:"not null" json:"file_type"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AfterDelete removes the stored file once the row is gone, so deleting an
// attachment never leaks files on disk.
func (a *Attachment) AfterDelete(tx *gorm.DB) error {
	if a.FilePath == "" {
		return nil
	}
	if err := os.Remove(a.FilePath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove attachment file %s: %v", a.FilePath, err)
	}
	return nil
}
