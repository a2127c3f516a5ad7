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

func TestMoodRepository_Memory(t *testing.T) {
	runMoodRepositoryTest(t, newMemoryRepo)
}

func TestMoodRepository_Firestore(t *testing.T) {
	runMoodRepositoryTest(t, newFirestoreRepo)
}

func runMoodRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	ctx := context.Background()

	seedEntry := func(t *testing.T, repo interfaces.Repository, userID types.UserID, score int, at time.Time) {
		t.Helper()
		entry := &model.MoodEntry{
			UserID:    userID,
			Score:     score,
			Label:     "neutral",
			CreatedAt: at,
		}
		_, err := repo.Mood().Create(ctx, entry)
		gt.NoError(t, err).Required()
	}

	t.Run("create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		entry := &model.MoodEntry{
			UserID:   types.NewUserID(),
			Score:    7,
			Label:    "happy",
			Notes:    "got good sleep",
			Triggers: []string{"Sleep", "Exercise"},
		}
		created, err := repo.Mood().Create(ctx, entry)
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.String(t, string(entry.ID)).Equal("")
	})

	t.Run("create rejects out of range score", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Mood().Create(ctx, &model.MoodEntry{
			UserID: types.NewUserID(),
			Score:  11,
			Label:  "happy",
		})
		gt.Error(t, err)
	})

	t.Run("list recent returns newest first with limit", func(t *testing.T) {
		repo := newRepo(t)
		userID := types.NewUserID()
		now := time.Now()
		seedEntry(t, repo, userID, 3, now.Add(-3*time.Hour))
		seedEntry(t, repo, userID, 5, now.Add(-2*time.Hour))
		seedEntry(t, repo, userID, 8, now.Add(-time.Hour))

		entries, err := repo.Mood().ListRecent(ctx, userID, 2)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(2)
		gt.Number(t, entries[0].Score).Equal(8)
		gt.Number(t, entries[1].Score).Equal(5)
	})

	t.Run("list since filters by timestamp", func(t *testing.T) {
		repo := newRepo(t)
		userID := types.NewUserID()
		now := time.Now()
		seedEntry(t, repo, userID, 4, now.Add(-10*24*time.Hour))
		seedEntry(t, repo, userID, 6, now.Add(-3*24*time.Hour))
		seedEntry(t, repo, userID, 7, now.Add(-time.Hour))

		entries, err := repo.Mood().ListSince(ctx, userID, now.Add(-7*24*time.Hour))
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(2)
		gt.Number(t, entries[0].Score).Equal(7)
	})

	t.Run("entries are isolated per user", func(t *testing.T) {
		repo := newRepo(t)
		user1 := types.NewUserID()
		user2 := types.NewUserID()
		seedEntry(t, repo, user1, 5, time.Now())

		entries, err := repo.Mood().ListRecent(ctx, user2, 10)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(0)
	})

	t.Run("delete all clears a user's entries only", func(t *testing.T) {
		repo := newRepo(t)
		user1 := types.NewUserID()
		user2 := types.NewUserID()
		seedEntry(t, repo, user1, 5, time.Now())
		seedEntry(t, repo, user2, 6, time.Now())

		gt.NoError(t, repo.Mood().DeleteAll(ctx, user1)).Required()

		entries, err := repo.Mood().ListRecent(ctx, user1, 10)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(0)

		kept, err := repo.Mood().ListRecent(ctx, user2, 10)
		gt.NoError(t, err).Required()
		gt.A(t, kept).Length(1)
	})
}
