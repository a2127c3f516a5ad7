package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

func TestMessageRepository_Memory(t *testing.T) {
	runMessageRepositoryTest(t, newMemoryRepo)
}

func TestMessageRepository_Firestore(t *testing.T) {
	runMessageRepositoryTest(t, newFirestoreRepo)
}

func runMessageRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	ctx := context.Background()

	seedTurns := func(t *testing.T, repo interfaces.Repository, userID types.UserID, texts ...string) {
		t.Helper()
		base := time.Now().Add(-time.Duration(len(texts)) * time.Minute)
		for i, text := range texts {
			msg := model.NewUserTurn(userID, text)
			msg.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			_, err := repo.Message().Create(ctx, msg)
			gt.NoError(t, err).Required()
		}
	}

	t.Run("create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		msg := &model.Message{
			UserID:    types.NewUserID(),
			Text:      "hello",
			Role:      types.RoleUser,
			Sentiment: types.SentimentNeutral,
		}
		created, err := repo.Message().Create(ctx, msg)
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		// The input is not mutated; assignment happens on the returned copy.
		gt.String(t, string(msg.ID)).Equal("")
	})

	t.Run("create rejects invalid message", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Message().Create(ctx, &model.Message{
			UserID: types.NewUserID(),
			Text:   "hello",
			Role:   types.Role("narrator"),
		})
		gt.Error(t, err)
	})

	t.Run("list recent returns newest first with limit", func(t *testing.T) {
		repo := newRepo(t)
		userID := types.NewUserID()
		seedTurns(t, repo, userID, "first", "second", "third", "fourth")

		msgs, err := repo.Message().ListRecent(ctx, userID, 2)
		gt.NoError(t, err).Required()
		gt.A(t, msgs).Length(2)
		gt.Value(t, msgs[0].Text).Equal("fourth")
		gt.Value(t, msgs[1].Text).Equal("third")
	})

	t.Run("list recent with generous limit returns all", func(t *testing.T) {
		repo := newRepo(t)
		userID := types.NewUserID()
		seedTurns(t, repo, userID, "only one")

		msgs, err := repo.Message().ListRecent(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.A(t, msgs).Length(1)
	})

	t.Run("list all returns every turn newest first", func(t *testing.T) {
		repo := newRepo(t)
		userID := types.NewUserID()
		seedTurns(t, repo, userID, "a", "b", "c")

		msgs, err := repo.Message().ListAll(ctx, userID)
		gt.NoError(t, err).Required()
		gt.A(t, msgs).Length(3)
		gt.Value(t, msgs[0].Text).Equal("c")
	})

	t.Run("history is isolated per user", func(t *testing.T) {
		repo := newRepo(t)
		user1 := types.NewUserID()
		user2 := types.NewUserID()
		seedTurns(t, repo, user1, "mine")

		msgs, err := repo.Message().ListRecent(ctx, user2, 10)
		gt.NoError(t, err).Required()
		gt.A(t, msgs).Length(0)
	})

	t.Run("delete all clears a user's history only", func(t *testing.T) {
		repo := newRepo(t)
		user1 := types.NewUserID()
		user2 := types.NewUserID()
		seedTurns(t, repo, user1, "a", "b")
		seedTurns(t, repo, user2, "keep")

		gt.NoError(t, repo.Message().DeleteAll(ctx, user1)).Required()

		msgs, err := repo.Message().ListAll(ctx, user1)
		gt.NoError(t, err).Required()
		gt.A(t, msgs).Length(0)

		kept, err := repo.Message().ListAll(ctx, user2)
		gt.NoError(t, err).Required()
		gt.A(t, kept).Length(1)
	})
}
