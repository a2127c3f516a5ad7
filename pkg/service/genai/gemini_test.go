package genai_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"

	"github.com/saathi-app/saathi/pkg/service/genai"
)

func TestGeminiGenerate(t *testing.T) {
	var gotSystemPrompt string
	var gotInput []gollem.Input
	var gotOpts []gollem.GenerateOption

	session := &mock.SessionMock{
		GenerateFunc: func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
			gotInput = input
			gotOpts = opts
			return &gollem.Response{Texts: []string{"hello from the companion"}}, nil
		},
	}
	llmClient := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			cfg := gollem.NewSessionConfig(options...)
			gotSystemPrompt = cfg.SystemPrompt()
			return session, nil
		},
	}

	svc := gt.R1(genai.NewGemini(llmClient)).NoError(t)

	out, err := svc.Generate(context.Background(), genai.Request{
		SystemPrompt: "You are a warm companion.",
		Prompt:       "hi",
		MaxTokens:    256,
		Temperature:  0.6,
	})
	gt.NoError(t, err)
	gt.Value(t, out).Equal("hello from the companion")
	gt.Value(t, gotSystemPrompt).Equal("You are a warm companion.")
	gt.A(t, gotInput).Length(1)

	// Token and temperature caps must reach the provider as per-call options.
	cfg := gollem.NewGenerateConfig(gotOpts...)
	maxTokens := cfg.MaxTokens()
	gt.Value(t, maxTokens).NotNil()
	gt.Value(t, *maxTokens).Equal(256)
	temperature := cfg.Temperature()
	gt.Value(t, temperature).NotNil()
	gt.Number(t, *temperature).Greater(0.59).Less(0.61)

	t.Run("zero limits stay unset", func(t *testing.T) {
		gotOpts = nil
		_, err := svc.Generate(context.Background(), genai.Request{Prompt: "hi"})
		gt.NoError(t, err)
		cfg := gollem.NewGenerateConfig(gotOpts...)
		gt.Value(t, cfg.MaxTokens()).Nil()
		gt.Value(t, cfg.Temperature()).Nil()
	})
}

func TestGeminiRequiresClient(t *testing.T) {
	_, err := genai.NewGemini(nil)
	gt.Error(t, err)
}
