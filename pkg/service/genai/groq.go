package genai

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// GroqBaseURL is the OpenAI-compatible endpoint of the Groq API.
	GroqBaseURL = "https://api.groq.com/openai/v1"

	// DefaultGroqModel is the chat model used unless overridden.
	DefaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqClient talks to the Groq API through its OpenAI-compatible
// surface.
type GroqClient struct {
	client *openai.Client
	model  string
}

var _ Service = (*GroqClient)(nil)

type GroqOption func(*GroqClient)

// WithGroqModel overrides the chat model.
func WithGroqModel(model string) GroqOption {
	return func(c *GroqClient) {
		c.model = model
	}
}

// NewGroq builds a Groq-backed Service. baseURL may be empty to use
// the public endpoint.
func NewGroq(apiKey, baseURL string, opts ...GroqOption) (*GroqClient, error) {
	if apiKey == "" {
		return nil, goerr.New("groq api key is required")
	}
	if baseURL == "" {
		baseURL = GroqBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	c := &GroqClient{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultGroqModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *GroqClient) Generate(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate completion",
			goerr.V("model", c.model))
	}
	if len(resp.Choices) == 0 {
		return "", goerr.New("completion returned no choices",
			goerr.V("model", c.model))
	}
	return resp.Choices[0].Message.Content, nil
}
