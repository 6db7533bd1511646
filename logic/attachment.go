package logic

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Moorthy04/Chat-bot/dao"
	"github.com/Moorthy04/Chat-bot/models"
	"github.com/Moorthy04/Chat-bot/pkg"

	"github.com/google/uuid"
)

// AttachmentLogic handles upload storage and text extraction
type AttachmentLogic struct {
	attachmentDAO *dao.AttachmentDAO
	uploadDir     string
}

func NewAttachmentLogic(attachmentDAO *dao.AttachmentDAO, uploadDir string) *AttachmentLogic {
	return &AttachmentLogic{
		attachmentDAO: attachmentDAO,
		uploadDir:     uploadDir,
	}
}

// SaveUpload stores the uploaded file on disk and records the attachment.
// Text extraction runs immediately so the excerpt is ready before any chat
// request references the attachment.
func (l *AttachmentLogic) SaveUpload(userID uint64, fileName, mimeType string, src io.Reader) (*models.Attachment, error) {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	if err := os.MkdirAll(l.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	// Prefix with a uuid so colliding upload names never overwrite each other
	storedPath := filepath.Join(l.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(fileName)))
	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	extracted := pkg.ExtractText(storedPath, mimeType)

	att, err := l.attachmentDAO.CreateAttachment(userID, storedPath, fileName, mimeType, extracted)
	if err != nil {
		os.Remove(storedPath)
		return nil, err
	}
	return att, nil
}

// DeleteAttachment deletes an attachment the user owns; the stored file is
// removed by the model's delete hook
func (l *AttachmentLogic) DeleteAttachment(id, userID uint64) error {
	att, err := l.attachmentDAO.GetAttachmentByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	return l.attachmentDAO.DeleteAttachment(att)
}
