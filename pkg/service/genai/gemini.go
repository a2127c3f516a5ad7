package genai

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// GeminiClient adapts a gollem LLM client to the Service interface.
type GeminiClient struct {
	llmClient gollem.LLMClient
}

var _ Service = (*GeminiClient)(nil)

// NewGemini wraps an already-configured gollem client.
func NewGemini(llmClient gollem.LLMClient) (*GeminiClient, error) {
	if llmClient == nil {
		return nil, goerr.New("llm client is required")
	}
	return &GeminiClient{llmClient: llmClient}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	var sessOpts []gollem.SessionOption
	if req.SystemPrompt != "" {
		sessOpts = append(sessOpts, gollem.WithSessionSystemPrompt(req.SystemPrompt))
	}

	session, err := c.llmClient.NewSession(ctx, sessOpts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	var genOpts []gollem.GenerateOption
	if req.MaxTokens > 0 {
		genOpts = append(genOpts, gollem.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature > 0 {
		genOpts = append(genOpts, gollem.WithTemperature(float64(req.Temperature)))
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(req.Prompt)}, genOpts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned no text")
	}
	return resp.Texts[0], nil
}
