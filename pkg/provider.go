package pkg

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// Provider is a single model backend capable of streaming a chat completion.
// New backends add an implementation; the engine selects between them.
type Provider interface {
	Name() string
	StreamCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, onDelta func(string) error) error
}

// openaiProvider drives any backend that speaks the OpenAI chat-completions
// wire protocol. Gemini and Claude both expose OpenAI-compatible endpoints,
// so one transport covers all three configured backends.
type openaiProvider struct {
	name   string
	model  string
	client *openai.Client
}

func newOpenAIProvider(name, baseURL, model, apiKey string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openaiProvider{
		name:   name,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (p *openaiProvider) Name() string { return p.name }

// StreamCompletion streams the completion, invoking onDelta for every
// non-empty text delta in arrival order
func (p *openaiProvider) StreamCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, onDelta func(string) error) error {
	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: replyTemperature,
		Stream:      true,
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, choice := range resp.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if err := onDelta(choice.Delta.Content); err != nil {
				return err
			}
		}
	}
}
