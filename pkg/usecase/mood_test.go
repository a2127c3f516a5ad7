package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"github.com/saathi-app/saathi/pkg/repository/memory"
	"github.com/saathi-app/saathi/pkg/usecase"
)

func TestMoodRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("valid entry is stored", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewMoodUseCase(repo)
		userID := types.NewUserID()

		entry, err := uc.Record(ctx, userID, usecase.MoodInput{
			Score:    7,
			Label:    "happy",
			Notes:    "slept well",
			Triggers: []string{"Sleep"},
		})
		gt.NoError(t, err).Required()
		// Record must hand back the repository's created entry, not the
		// pre-insert input.
		gt.String(t, string(entry.ID)).NotEqual("")
		gt.Bool(t, entry.CreatedAt.IsZero()).False()

		entries, err := uc.List(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(1)
		gt.Number(t, entries[0].Score).Equal(7)
	})

	t.Run("out of range score is a validation error", func(t *testing.T) {
		uc := usecase.NewMoodUseCase(memory.New())
		_, err := uc.Record(ctx, types.NewUserID(), usecase.MoodInput{Score: 0})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidMood)).True()
	})

	t.Run("list clamps the limit", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewMoodUseCase(repo)
		userID := types.NewUserID()

		for i := 0; i < 3; i++ {
			_, err := uc.Record(ctx, userID, usecase.MoodInput{Score: 5, Label: "neutral"})
			gt.NoError(t, err).Required()
		}

		entries, err := uc.List(ctx, userID, -1)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(3)
	})
}
