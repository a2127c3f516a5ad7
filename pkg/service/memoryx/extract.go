// Package memoryx extracts long-lived user facts from chat messages
// using an LLM and merges them into the user's stored fact set.
package memoryx

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/service/genai"
)

//go:embed prompt/extract.md
var extractPromptTmpl string

var extractPrompt = template.Must(template.New("extract").Parse(extractPromptTmpl))

const (
	// noUpdateSentinel is what the model returns when a message
	// carries no memorable facts.
	noUpdateSentinel = "NO_UPDATE"

	extractMaxTokens   = 100
	extractTemperature = 0.3
)

// Extractor turns a single chat message into a fact delta.
type Extractor struct {
	genai genai.Service
}

func New(genaiSvc genai.Service) (*Extractor, error) {
	if genaiSvc == nil {
		return nil, goerr.New("genai service is required")
	}
	return &Extractor{genai: genaiSvc}, nil
}

type extractPromptData struct {
	Message string
	Facts   string
}

// Extract asks the model for fact changes implied by the message. An
// empty delta means nothing to apply: either the model answered with
// the no-update sentinel or the response was not a JSON object. A
// non-nil error means the response looked like JSON but could not be
// accepted; callers treat that as non-fatal.
func (x *Extractor) Extract(ctx context.Context, message string, existing model.FactSet) (model.FactDelta, error) {
	facts := "None"
	if len(existing) > 0 {
		facts = existing.JSON()
	}

	var buf bytes.Buffer
	if err := extractPrompt.Execute(&buf, extractPromptData{
		Message: message,
		Facts:   facts,
	}); err != nil {
		return model.FactDelta{}, goerr.Wrap(err, "failed to build extraction prompt")
	}

	resp, err := x.genai.Generate(ctx, genai.Request{
		Prompt:      buf.String(),
		MaxTokens:   extractMaxTokens,
		Temperature: extractTemperature,
	})
	if err != nil {
		return model.FactDelta{}, goerr.Wrap(err, "failed to extract facts")
	}

	text := strings.TrimSpace(resp)
	if text == noUpdateSentinel || !strings.HasPrefix(text, "{") {
		return model.FactDelta{}, nil
	}

	delta, err := model.ParseFactDelta([]byte(text))
	if err != nil {
		return model.FactDelta{}, goerr.Wrap(err, "failed to parse fact delta",
			goerr.V("response", text))
	}
	return delta, nil
}
