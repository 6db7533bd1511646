package logic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Moorthy04/Chat-bot/dao"
	"github.com/Moorthy04/Chat-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAttachmentFixture(t *testing.T) (*AttachmentLogic, *dao.AttachmentDAO, string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Attachment{}))

	attDAO := dao.NewAttachmentDAO(db)
	uploadDir := filepath.Join(t.TempDir(), "uploads")
	return NewAttachmentLogic(attDAO, uploadDir), attDAO, uploadDir
}

func TestSaveUploadStoresFileAndExtractsText(t *testing.T) {
	l, _, uploadDir := newAttachmentFixture(t)

	att, err := l.SaveUpload(1, "notes.txt", "text/plain", strings.NewReader("remember the milk"))
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", att.FileName)
	assert.Equal(t, "text/plain", att.FileType)
	assert.Equal(t, "remember the milk", att.ExtractedText)
	assert.Nil(t, att.MessageID)

	// File landed under the upload dir with a unique prefix.
	assert.True(t, strings.HasPrefix(att.FilePath, uploadDir))
	data, err := os.ReadFile(att.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", string(data))
}

func TestSaveUploadImageGetsPlaceholderText(t *testing.T) {
	l, _, _ := newAttachmentFixture(t)

	att, err := l.SaveUpload(1, "photo.png", "image/png", strings.NewReader("\x89PNG"))
	require.NoError(t, err)
	assert.Contains(t, att.ExtractedText, "[Image File:")
}

func TestDeleteAttachmentRemovesRowAndFile(t *testing.T) {
	l, attDAO, _ := newAttachmentFixture(t)

	att, err := l.SaveUpload(1, "notes.txt", "text/plain", strings.NewReader("bye"))
	require.NoError(t, err)
	storedPath := att.FilePath

	require.NoError(t, l.DeleteAttachment(att.ID, 1))

	_, err = attDAO.GetAttachmentByIDAndUser(att.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = os.Stat(storedPath)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteAttachmentRejectsForeignOwner(t *testing.T) {
	l, _, _ := newAttachmentFixture(t)

	att, err := l.SaveUpload(1, "notes.txt", "text/plain", strings.NewReader("mine"))
	require.NoError(t, err)

	err = l.DeleteAttachment(att.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// File untouched.
	_, statErr := os.Stat(att.FilePath)
	assert.NoError(t, statErr)
}
