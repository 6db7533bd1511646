package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Moorthy04/Chat-bot/logic"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AttachmentController handles HTTP requests
type AttachmentController struct {
	attachmentLogic *logic.AttachmentLogic
}

func NewAttachmentController(attachmentLogic *logic.AttachmentLogic) *AttachmentController {
	return &AttachmentController{attachmentLogic: attachmentLogic}
}

// Upload handles POST /upload
func (c *AttachmentController) Upload(ctx *gin.Context) {
	userID, err := extractUserID(ctx)
	if err != nil {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable upload"})
		return
	}
	defer src.Close()

	att, err := c.attachmentLogic.SaveUpload(userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, att)
}

// DeleteAttachment handles DELETE /attachments/:id
func (c *AttachmentController) DeleteAttachment(ctx *gin.Context) {
	userID, err := extractUserID(ctx)
	if err != nil {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID"})
		return
	}

	if err := c.attachmentLogic.DeleteAttachment(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}
