package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"github.com/saathi-app/saathi/pkg/service/genai"
	"github.com/saathi-app/saathi/pkg/service/memoryx"
	"github.com/saathi-app/saathi/pkg/service/triage"
	"github.com/saathi-app/saathi/pkg/utils/lock"
	"github.com/saathi-app/saathi/pkg/utils/logging"
)

//go:embed prompt/compose.md
var composePromptTmpl string

var composePrompt = template.Must(template.New("compose").Parse(composePromptTmpl))

const (
	DefaultPersona = "Saathi"
	DefaultHotline = "AASRA at 91-22-2754 6669"

	// exerciseMarker is the sentinel the model appends when it wants
	// the client to show the breathing exercise.
	exerciseMarker = "[BREATHING_EXERCISE]"

	contextTurns = 6
	contextMoods = 3

	composeMaxTokens   = 150
	composeTemperature = 0.6

	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// ChatUseCase runs the message intake pipeline: classify, update
// memory, assemble context, generate a reply, persist both turns.
type ChatUseCase struct {
	repo       interfaces.Repository
	genai      genai.Service
	classifier *triage.Classifier
	extractor  *memoryx.Extractor
	factLocks  *lock.Keyed
	persona    string
	hotline    string
}

type ChatOption func(*ChatUseCase)

func WithChatPersona(name string) ChatOption {
	return func(uc *ChatUseCase) {
		if name != "" {
			uc.persona = name
		}
	}
}

func WithChatHotline(hotline string) ChatOption {
	return func(uc *ChatUseCase) {
		if hotline != "" {
			uc.hotline = hotline
		}
	}
}

func NewChatUseCase(repo interfaces.Repository, genaiSvc genai.Service, classifier *triage.Classifier, extractor *memoryx.Extractor, opts ...ChatOption) *ChatUseCase {
	uc := &ChatUseCase{
		repo:       repo,
		genai:      genaiSvc,
		classifier: classifier,
		extractor:  extractor,
		factLocks:  lock.NewKeyed(),
		persona:    DefaultPersona,
		hotline:    DefaultHotline,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ChatInput is one user message plus the client's view of whether a
// breathing exercise was already shown in this conversation.
type ChatInput struct {
	UserID        types.UserID
	Message       string
	ExerciseShown bool
}

type ChatOutput struct {
	Response     string
	ShowExercise bool
}

// Chat handles a single user message end to end. Memory extraction
// and turn persistence are best-effort; only reply generation failure
// fails the request.
func (uc *ChatUseCase) Chat(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(input.Message) == "" {
		return nil, goerr.Wrap(ErrEmptyMessage, "empty chat message")
	}

	history, err := uc.repo.Message().ListRecent(ctx, input.UserID, contextTurns)
	if err != nil {
		logger.Warn("failed to load chat history, composing without it", "error", err.Error())
		history = nil
	}

	// The client flag alone is spoofable; an intervention-flagged
	// assistant turn in the context window also counts as shown.
	shown := input.ExerciseShown || hasIntervention(history)

	decision := uc.classifier.Classify(input.Message, shown)
	if decision.NeedsExercise {
		logger.Info("distress keywords detected",
			"tier", decision.Tier,
			"keyword", decision.Keyword,
			"exerciseShown", shown,
		)
	}

	facts := uc.updateMemory(ctx, input.UserID, input.Message)

	moods, err := uc.repo.Mood().ListRecent(ctx, input.UserID, contextMoods)
	if err != nil {
		logger.Warn("failed to load mood entries, composing without them", "error", err.Error())
		moods = nil
	}

	prompt, err := uc.buildComposePrompt(input.Message, facts, history, moods, decision.NeedsExercise, shown)
	if err != nil {
		return nil, err
	}

	reply, err := uc.genai.Generate(ctx, genai.Request{
		Prompt:      prompt,
		MaxTokens:   composeMaxTokens,
		Temperature: composeTemperature,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate reply")
	}

	// The model's marker is authoritative: the classifier only shapes
	// the prompt.
	showExercise := strings.Contains(reply, exerciseMarker)
	clean := strings.TrimSpace(strings.Replace(reply, exerciseMarker, "", 1))

	uc.persistTurns(ctx, input.UserID, input.Message, clean, showExercise)

	return &ChatOutput{
		Response:     clean,
		ShowExercise: showExercise,
	}, nil
}

// History returns recent turns for the chat page, newest first.
func (uc *ChatUseCase) History(ctx context.Context, userID types.UserID, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	msgs, err := uc.repo.Message().ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list chat history")
	}
	return msgs, nil
}

// updateMemory runs fact extraction and merges the result into the
// stored set. The whole read-merge-write runs under a per-user lock
// so concurrent messages from the same user cannot drop each other's
// updates. Every failure degrades to the best fact set known so far.
func (uc *ChatUseCase) updateMemory(ctx context.Context, userID types.UserID, message string) model.FactSet {
	logger := logging.From(ctx)

	key := userID.String()
	uc.factLocks.Lock(key)
	defer uc.factLocks.Unlock(key)

	facts, err := uc.repo.Fact().Get(ctx, userID)
	if err != nil {
		logger.Warn("failed to load user facts", "error", err.Error())
		facts = model.FactSet{}
	}

	delta, err := uc.extractor.Extract(ctx, message, facts)
	if err != nil {
		logger.Warn("failed to extract facts", "error", err.Error())
		return facts
	}
	if delta.Empty() {
		return facts
	}

	merged := facts.Merge(delta)
	if err := uc.repo.Fact().Put(ctx, userID, merged); err != nil {
		logger.Error("failed to persist user facts", "error", err.Error())
	}
	return merged
}

type composeTurn struct {
	Speaker string
	Text    string
}

type composeMood struct {
	Index    int
	Score    int
	Triggers string
	Notes    string
}

type composePromptData struct {
	Persona       string
	Hotline       string
	Facts         string
	NeedsExercise bool
	ExerciseShown bool
	Turns         []composeTurn
	Moods         []composeMood
	Message       string
}

func (uc *ChatUseCase) buildComposePrompt(message string, facts model.FactSet, history []*model.Message, moods []*model.MoodEntry, needsExercise, shown bool) (string, error) {
	data := composePromptData{
		Persona:       uc.persona,
		Hotline:       uc.hotline,
		Facts:         "None stored yet",
		NeedsExercise: needsExercise,
		ExerciseShown: shown,
		Message:       message,
	}
	if len(facts) > 0 {
		data.Facts = facts.JSON()
	}

	// history is newest first; the transcript reads oldest first.
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		speaker := uc.persona
		if msg.Role == types.RoleUser {
			speaker = "User"
		}
		data.Turns = append(data.Turns, composeTurn{Speaker: speaker, Text: msg.Text})
	}

	for i, entry := range moods {
		triggers := "None"
		if len(entry.Triggers) > 0 {
			triggers = strings.Join(entry.Triggers, ", ")
		}
		notes := entry.Notes
		if notes == "" {
			notes = "None"
		}
		data.Moods = append(data.Moods, composeMood{
			Index:    i + 1,
			Score:    entry.Score,
			Triggers: triggers,
			Notes:    notes,
		})
	}

	var buf bytes.Buffer
	if err := composePrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to build compose prompt")
	}
	return buf.String(), nil
}

// persistTurns saves the user turn and the assistant turn in order.
// Failures are logged; the reply has already been generated and is
// still returned to the user.
func (uc *ChatUseCase) persistTurns(ctx context.Context, userID types.UserID, userText, reply string, intervention bool) {
	logger := logging.From(ctx)

	if _, err := uc.repo.Message().Create(ctx, model.NewUserTurn(userID, userText)); err != nil {
		logger.Error("failed to save user message", "error", err.Error())
	}
	if _, err := uc.repo.Message().Create(ctx, model.NewAssistantTurn(userID, reply, intervention)); err != nil {
		logger.Error("failed to save assistant message", "error", err.Error())
	}
}

func hasIntervention(history []*model.Message) bool {
	for _, msg := range history {
		if msg.Role == types.RoleAssistant && msg.Intervention {
			return true
		}
	}
	return false
}
