package pkg

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	replyTemperature = 0.7
	titleMaxWords    = 5
)

// OpenAI-compatible endpoints for the non-OpenAI backends.
const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	claudeBaseURL = "https://api.anthropic.com/v1"
)

// providerPriority is the fallback order when the requested model has no
// configured credential.
var providerPriority = []string{"gemini", "gpt", "claude"}

// ChatTurn is one role-tagged turn of conversation history, oldest first.
type ChatTurn struct {
	Role    string
	Content string
}

// AttachmentInput is a resolved attachment record handed to the engine.
// Image-typed inputs are forwarded to the model as binary parts.
type AttachmentInput struct {
	Path     string
	Name     string
	MIMEType string
}

// ReplyRequest carries everything one streaming pass needs. All fields are
// plain in-memory values; the engine performs no storage access.
type ReplyRequest struct {
	UserText    string
	History     []ChatTurn
	Context     string
	Model       string
	Attachments []AttachmentInput
}

// EngineConfig maps provider names to API keys. An empty key leaves that
// provider unconfigured.
type EngineConfig struct {
	GeminiAPIKey string
	OpenAIAPIKey string
	ClaudeAPIKey string
}

// Engine routes chat requests across the configured model providers
type Engine struct {
	providers map[string]Provider
}

// NewEngine builds an engine with one provider per configured credential
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{providers: make(map[string]Provider)}
	if cfg.GeminiAPIKey != "" {
		e.Register("gemini", newOpenAIProvider("gemini", geminiBaseURL, "gemini-2.5-flash", cfg.GeminiAPIKey))
	}
	if cfg.OpenAIAPIKey != "" {
		e.Register("gpt", newOpenAIProvider("gpt", "", "gpt-4o-mini", cfg.OpenAIAPIKey))
	}
	if cfg.ClaudeAPIKey != "" {
		e.Register("claude", newOpenAIProvider("claude", claudeBaseURL, "claude-sonnet-4-20250514", cfg.ClaudeAPIKey))
	}
	return e
}

// Register installs a provider under a model name, replacing any existing one
func (e *Engine) Register(name string, p Provider) {
	e.providers[name] = p
}

// resolveProvider picks the backend for the requested model, falling back to
// the first configured provider in priority order. Nil means no credential
// resolves at all.
func (e *Engine) resolveProvider(model string) Provider {
	if p, ok := e.providers[model]; ok {
		return p
	}
	for _, name := range providerPriority {
		if p, ok := e.providers[name]; ok {
			return p
		}
	}
	return nil
}

// StreamReply streams the assistant reply for req, invoking onFragment for
// every piece of generated text in arrival order. The stream always
// terminates cleanly: missing credentials and provider failures are
// translated into a final human-readable fragment, never propagated.
func (e *Engine) StreamReply(ctx context.Context, req *ReplyRequest, onFragment func(string)) {
	provider := e.resolveProvider(req.Model)
	if provider == nil {
		onFragment(fmt.Sprintf("API key for %s not configured.", req.Model))
		return
	}

	err := provider.StreamCompletion(ctx, buildMessages(req), func(delta string) error {
		onFragment(delta)
		return nil
	})
	if err != nil {
		onFragment(translateStreamError(req.Model, err))
	}
}

// translateStreamError converts a provider failure into the fragment shown to
// the user. Rate-limit style failures suggest switching models; anything else
// surfaces the underlying message.
func translateStreamError(model string, err error) string {
	upper := strings.ToUpper(err.Error())
	if strings.Contains(upper, "429") || strings.Contains(upper, "RESOURCE_EXHAUSTED") {
		return fmt.Sprintf("\n\n⚠️ %s is currently unavailable. Try switching to other models! 🙏\n", strings.ToUpper(model))
	}
	return fmt.Sprintf("\n\n**[Error]** %v\n", err)
}

// buildMessages constructs the provider-native conversation payload: each
// history turn becomes a role-tagged turn, then the current turn appends
// image attachments as inline binary parts followed by a single text part.
func buildMessages(req *ReplyRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := openai.ChatMessageRoleAssistant
		if turn.Role == "user" {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	parts := make([]openai.ChatMessagePart, 0, len(req.Attachments)+1)
	for _, att := range req.Attachments {
		if !strings.HasPrefix(att.MIMEType, "image/") {
			continue
		}
		data, err := os.ReadFile(att.Path)
		if err != nil {
			log.Printf("Failed to read attachment %s: %v", att.Path, err)
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", att.MIMEType, base64.StdEncoding.EncodeToString(data)),
			},
		})
	}

	text := req.UserText
	if req.Context != "" {
		text = req.Context + "\n\nUser Question: " + req.UserText
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: text,
	})

	return append(messages, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	})
}

// GenerateTitle derives a short conversation title from the first user
// message: the first five words, ellipsised only when the text is longer.
func GenerateTitle(userText string) string {
	words := strings.Fields(userText)
	if len(words) <= titleMaxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:titleMaxWords], " ") + "..."
}
