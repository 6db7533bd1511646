package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Moorthy04/Chat-bot/logic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatController handles the streaming chat endpoint
type ChatController struct {
	chatLogic *logic.ChatLogic
}

func NewChatController(chatLogic *logic.ChatLogic) *ChatController {
	return &ChatController{chatLogic: chatLogic}
}

// ChatStream handles POST /chat/stream. All storage work happens before the
// SSE headers go out; once streaming starts the response can only end with
// the [DONE] frame.
func (c *ChatController) ChatStream(ctx *gin.Context) {
	type Request struct {
		ConversationID string   `json:"conversation_id" binding:"required"`
		UserMessage    string   `json:"user_message" binding:"required"`
		AttachmentIDs  []uint64 `json:"attachment_ids"`
		Model          string   `json:"model"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := extractUserID(ctx)
	if err != nil {
		return
	}

	convoID, err := uuid.Parse(req.ConversationID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	if req.Model == "" {
		req.Model = "gemini"
	}

	prepared, err := c.chatLogic.PrepareStream(userID, &logic.ChatRequest{
		ConversationID: convoID,
		UserText:       req.UserMessage,
		AttachmentIDs:  req.AttachmentIDs,
		Model:          req.Model,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Stream response to client using Server-Sent Events
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	prepared.Run(ctx.Request.Context(), func(frame []byte) {
		if _, err := ctx.Writer.Write(frame); err != nil {
			log.Printf("Failed to write stream frame: %v", err)
			return
		}
		ctx.Writer.Flush()
	})
}
