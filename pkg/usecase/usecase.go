package usecase

import (
	"cloud.google.com/go/storage"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/service/genai"
	"github.com/saathi-app/saathi/pkg/service/memoryx"
	"github.com/saathi-app/saathi/pkg/service/triage"
)

// UseCases aggregates all application use cases behind one
// constructor so the CLI and HTTP layers wire a single object.
type UseCases struct {
	repo       interfaces.Repository
	genai      genai.Service
	classifier *triage.Classifier

	persona      string
	hotline      string
	exportBucket string
	storage      *storage.Client

	Chat      *ChatUseCase
	Mood      *MoodUseCase
	Dashboard *DashboardUseCase
	Account   *AccountUseCase
	Auth      AuthUseCaseInterface
}

type Option func(*UseCases)

// WithAuth replaces the default password-based auth use case, e.g.
// with the no-auth development mode.
func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithClassifier replaces the default keyword classifier, e.g. one
// extended with deployment-specific keywords.
func WithClassifier(c *triage.Classifier) Option {
	return func(uc *UseCases) {
		uc.classifier = c
	}
}

// WithPersona overrides the companion persona name used in prompts
// and transcripts.
func WithPersona(name string) Option {
	return func(uc *UseCases) {
		if name != "" {
			uc.persona = name
		}
	}
}

// WithHotline overrides the crisis hotline reference in the safety
// script.
func WithHotline(hotline string) Option {
	return func(uc *UseCases) {
		if hotline != "" {
			uc.hotline = hotline
		}
	}
}

// WithExportBucket enables GCS upload of account data exports.
func WithExportBucket(client *storage.Client, bucket string) Option {
	return func(uc *UseCases) {
		uc.storage = client
		uc.exportBucket = bucket
	}
}

func New(repo interfaces.Repository, genaiSvc genai.Service, opts ...Option) (*UseCases, error) {
	uc := &UseCases{
		repo:    repo,
		genai:   genaiSvc,
		persona: DefaultPersona,
		hotline: DefaultHotline,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.classifier == nil {
		uc.classifier = triage.New()
	}

	extractor, err := memoryx.New(genaiSvc)
	if err != nil {
		return nil, err
	}

	uc.Chat = NewChatUseCase(repo, genaiSvc, uc.classifier, extractor,
		WithChatPersona(uc.persona), WithChatHotline(uc.hotline))
	uc.Mood = NewMoodUseCase(repo)
	uc.Dashboard = NewDashboardUseCase(repo)
	uc.Account = NewAccountUseCase(repo, uc.storage, uc.exportBucket)
	if uc.Auth == nil {
		uc.Auth = NewAuthUseCase(repo)
	}

	return uc, nil
}
