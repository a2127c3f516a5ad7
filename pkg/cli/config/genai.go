package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/saathi-app/saathi/pkg/service/genai"
	"github.com/urfave/cli/v3"
)

// GenAI holds CLI flags for the language model backend.
type GenAI struct {
	backend string

	groqAPIKey  string
	groqBaseURL string
	groqModel   string

	geminiProject  string
	geminiLocation string
}

// Flags returns CLI flags for the language model configuration
func (g *GenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "genai-backend",
			Usage:       "Language model backend (groq or gemini)",
			Value:       "groq",
			Sources:     cli.EnvVars("SAATHI_GENAI_BACKEND"),
			Destination: &g.backend,
		},
		&cli.StringFlag{
			Name:        "groq-api-key",
			Usage:       "Groq API key (required when using groq backend)",
			Sources:     cli.EnvVars("SAATHI_GROQ_API_KEY"),
			Destination: &g.groqAPIKey,
		},
		&cli.StringFlag{
			Name:        "groq-base-url",
			Usage:       "Groq API base URL",
			Value:       genai.GroqBaseURL,
			Sources:     cli.EnvVars("SAATHI_GROQ_BASE_URL"),
			Destination: &g.groqBaseURL,
		},
		&cli.StringFlag{
			Name:        "groq-model",
			Usage:       "Groq model ID",
			Value:       genai.DefaultGroqModel,
			Sources:     cli.EnvVars("SAATHI_GROQ_MODEL"),
			Destination: &g.groqModel,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API (required when using gemini backend)",
			Sources:     cli.EnvVars("SAATHI_GEMINI_PROJECT"),
			Destination: &g.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("SAATHI_GEMINI_LOCATION"),
			Destination: &g.geminiLocation,
		},
	}
}

// LogAttrs returns log attributes for the language model configuration.
// Secrets are never included.
func (g *GenAI) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("backend", g.backend),
		slog.String("groq_model", g.groqModel),
		slog.String("gemini_project", g.geminiProject),
		slog.String("gemini_location", g.geminiLocation),
	}
}

// Configure creates a language model service from the configured flags.
func (g *GenAI) Configure(ctx context.Context) (genai.Service, error) {
	switch g.backend {
	case "groq":
		svc, err := genai.NewGroq(g.groqAPIKey, g.groqBaseURL, genai.WithGroqModel(g.groqModel))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Groq client")
		}
		return svc, nil

	case "gemini":
		if g.geminiProject == "" {
			return nil, goerr.New("gemini-project is required when using gemini backend")
		}
		client, err := gemini.New(ctx, g.geminiProject, g.geminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		svc, err := genai.NewGemini(client)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini service")
		}
		return svc, nil

	default:
		return nil, goerr.New("invalid genai backend", goerr.V("backend", g.backend))
	}
}
