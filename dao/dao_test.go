package dao

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Moorthy04/Chat-bot/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}, &models.Attachment{}))
	return db
}

func TestConversationOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	d := NewConversationDAO(db)

	convo, err := d.CreateConversation(1)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTitle, convo.Title)

	_, err = d.GetConversationByIDAndUser(convo.ID, 1)
	assert.NoError(t, err)

	// Another user's lookup is indistinguishable from not-found.
	_, err = d.GetConversationByIDAndUser(convo.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateTitle(t *testing.T) {
	db := setupTestDB(t)
	d := NewConversationDAO(db)

	convo, err := d.CreateConversation(1)
	require.NoError(t, err)

	require.NoError(t, d.UpdateTitle(convo.ID, "Explain quicksort briefly"))

	got, err := d.GetConversationByIDAndUser(convo.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Explain quicksort briefly", got.Title)
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	d := NewMessageDAO(db)
	convoID := uuid.New()

	for _, content := range []string{"one", "two", "three"} {
		_, err := d.CreateMessage(convoID, "user", content)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	messages, err := d.GetMessagesByConversationID(convoID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "three", messages[2].Content)
}

func TestGetRecentMessagesExcludesLatestAndLimits(t *testing.T) {
	db := setupTestDB(t)
	d := NewMessageDAO(db)
	convoID := uuid.New()

	var last *models.Message
	for _, content := range []string{"a", "b", "c", "d"} {
		var err error
		last, err = d.CreateMessage(convoID, "user", content)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := d.GetRecentMessages(convoID, last.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first, the just-created message excluded.
	assert.Equal(t, "c", recent[0].Content)
	assert.Equal(t, "b", recent[1].Content)
}

func TestLinkToMessageFiltersByOwner(t *testing.T) {
	db := setupTestDB(t)
	d := NewAttachmentDAO(db)
	m := NewMessageDAO(db)

	mine, err := d.CreateAttachment(1, "/tmp/a.txt", "a.txt", "text/plain", "aaa")
	require.NoError(t, err)
	theirs, err := d.CreateAttachment(2, "/tmp/b.txt", "b.txt", "text/plain", "bbb")
	require.NoError(t, err)

	msg, err := m.CreateMessage(uuid.New(), "user", "hi")
	require.NoError(t, err)

	require.NoError(t, d.LinkToMessage([]uint64{mine.ID, theirs.ID}, 1, msg.ID))

	linked, err := d.GetByMessageID(msg.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, mine.ID, linked[0].ID)
}

func TestDeleteConversationRemovesMessages(t *testing.T) {
	db := setupTestDB(t)
	cd := NewConversationDAO(db)
	md := NewMessageDAO(db)

	convo, err := cd.CreateConversation(1)
	require.NoError(t, err)
	_, err = md.CreateMessage(convo.ID, "user", "hello")
	require.NoError(t, err)

	require.NoError(t, cd.DeleteConversation(convo.ID, 1))

	messages, err := md.GetMessagesByConversationID(convo.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
