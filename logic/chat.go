package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Moorthy04/Chat-bot/dao"
	"github.com/Moorthy04/Chat-bot/models"
	"github.com/Moorthy04/Chat-bot/pkg"

	"github.com/google/uuid"
)

// historyWindow is how many prior messages accompany a new chat request.
const historyWindow = 10

// ChatRequest is the input to one streaming chat pass
type ChatRequest struct {
	ConversationID uuid.UUID
	UserText       string
	AttachmentIDs  []uint64
	Model          string
}

// ChatLogic drives the streaming chat flow. Everything the stream needs is
// loaded and written up front, so the streaming phase is a pure function of
// in-memory values plus the provider call: the database connection bound to
// the request may not survive once the response has started streaming.
type ChatLogic struct {
	convoDAO      *dao.ConversationDAO
	messageDAO    *dao.MessageDAO
	attachmentDAO *dao.AttachmentDAO
	engine        *pkg.Engine
}

func NewChatLogic(
	convoDAO *dao.ConversationDAO,
	messageDAO *dao.MessageDAO,
	attachmentDAO *dao.AttachmentDAO,
	engine *pkg.Engine,
) *ChatLogic {
	return &ChatLogic{
		convoDAO:      convoDAO,
		messageDAO:    messageDAO,
		attachmentDAO: attachmentDAO,
		engine:        engine,
	}
}

// PreparedStream holds every value the streaming phase needs, fully
// materialized from storage. It is single-use: one Run per request.
type PreparedStream struct {
	logic          *ChatLogic
	conversationID uuid.UUID
	request        *pkg.ReplyRequest
}

// PrepareStream performs every storage read and write the request needs
// before any byte goes to the client: resolve the conversation for its
// owner, persist the user message, link and materialize attachments, build
// the context string, load recent history, and rewrite the placeholder
// title. Any error here fails the request before streaming begins.
func (l *ChatLogic) PrepareStream(userID uint64, req *ChatRequest) (*PreparedStream, error) {
	conversation, err := l.convoDAO.GetConversationByIDAndUser(req.ConversationID, userID)
	if err != nil {
		return nil, err
	}

	userMsg, err := l.messageDAO.CreateMessage(conversation.ID, "user", req.UserText)
	if err != nil {
		return nil, err
	}

	if len(req.AttachmentIDs) > 0 {
		if err := l.attachmentDAO.LinkToMessage(req.AttachmentIDs, userID, userMsg.ID); err != nil {
			return nil, err
		}
	}

	// Materialize the linked attachments into plain values now; no deferred
	// query may run once streaming has started.
	attachments, err := l.attachmentDAO.GetByMessageID(userMsg.ID)
	if err != nil {
		return nil, err
	}

	var contextParts []string
	inputs := make([]pkg.AttachmentInput, 0, len(attachments))
	for _, att := range attachments {
		inputs = append(inputs, pkg.AttachmentInput{
			Path:     att.FilePath,
			Name:     att.FileName,
			MIMEType: att.FileType,
		})
		if att.ExtractedText != "" {
			contextParts = append(contextParts, fmt.Sprintf("File: %s\nContent: %s", att.FileName, att.ExtractedText))
		}
	}

	recent, err := l.messageDAO.GetRecentMessages(conversation.ID, userMsg.ID, historyWindow)
	if err != nil {
		return nil, err
	}
	history := make([]pkg.ChatTurn, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, pkg.ChatTurn{Role: recent[i].Role, Content: recent[i].Content})
	}

	if conversation.Title == models.DefaultTitle || conversation.Title == "" {
		if err := l.convoDAO.UpdateTitle(conversation.ID, pkg.GenerateTitle(req.UserText)); err != nil {
			return nil, err
		}
	}

	return &PreparedStream{
		logic:          l,
		conversationID: conversation.ID,
		request: &pkg.ReplyRequest{
			UserText:    req.UserText,
			History:     history,
			Context:     strings.Join(contextParts, "\n\n"),
			Model:       req.Model,
			Attachments: inputs,
		},
	}, nil
}

// Run drives the provider stream and finalizes exactly once. Each fragment
// is accumulated and emitted as a framed event immediately. The assistant
// message is persisted unconditionally afterwards, whether the stream ended
// in success, a translated provider error, or client disconnect; a failed
// persist is logged and swallowed since the client already has the text.
func (s *PreparedStream) Run(ctx context.Context, emit func([]byte)) {
	var accumulated strings.Builder
	s.logic.engine.StreamReply(ctx, s.request, func(fragment string) {
		accumulated.WriteString(fragment)
		data, err := json.Marshal(fragment)
		if err != nil {
			log.Printf("Failed to encode fragment: %v", err)
			return
		}
		emit([]byte(fmt.Sprintf("data: %s\n\n", data)))
	})

	if _, err := s.logic.messageDAO.CreateMessage(s.conversationID, "assistant", accumulated.String()); err != nil {
		log.Printf("Failed to save assistant message: %v", err)
	}
	emit([]byte("data: [DONE]\n\n"))
}
