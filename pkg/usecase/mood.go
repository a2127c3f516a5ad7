package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

const (
	defaultMoodLimit = 30
	maxMoodLimit     = 200
)

// MoodUseCase records and lists mood check-ins.
type MoodUseCase struct {
	repo interfaces.Repository
}

func NewMoodUseCase(repo interfaces.Repository) *MoodUseCase {
	return &MoodUseCase{repo: repo}
}

type MoodInput struct {
	Score    int
	Label    string
	Notes    string
	Triggers []string
}

// Record validates and stores one mood entry.
func (uc *MoodUseCase) Record(ctx context.Context, userID types.UserID, input MoodInput) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{
		UserID:   userID,
		Score:    input.Score,
		Label:    input.Label,
		Notes:    input.Notes,
		Triggers: input.Triggers,
	}
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidMood, err.Error())
	}

	created, err := uc.repo.Mood().Create(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save mood entry")
	}
	return created, nil
}

// List returns recent entries, newest first.
func (uc *MoodUseCase) List(ctx context.Context, userID types.UserID, limit int) ([]*model.MoodEntry, error) {
	if limit <= 0 {
		limit = defaultMoodLimit
	}
	if limit > maxMoodLimit {
		limit = maxMoodLimit
	}

	entries, err := uc.repo.Mood().ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list mood entries")
	}
	return entries, nil
}
