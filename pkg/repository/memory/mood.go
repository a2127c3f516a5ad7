package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

type moodRepository struct {
	mu      sync.RWMutex
	entries map[types.UserID][]*model.MoodEntry
}

func newMoodRepository() *moodRepository {
	return &moodRepository{
		entries: make(map[types.UserID][]*model.MoodEntry),
	}
}

func copyMoodEntry(e *model.MoodEntry) *model.MoodEntry {
	copied := *e
	if e.Triggers != nil {
		copied.Triggers = make([]string, len(e.Triggers))
		copy(copied.Triggers, e.Triggers)
	}
	return &copied
}

func (r *moodRepository) Create(ctx context.Context, entry *model.MoodEntry) (*model.MoodEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid mood entry")
	}
	if err := entry.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid mood entry user ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyMoodEntry(entry)
	if created.ID == "" {
		created.ID = types.NewMoodEntryID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.entries[entry.UserID] = append(r.entries[entry.UserID], created)
	return copyMoodEntry(created), nil
}

func (r *moodRepository) list(userID types.UserID) []*model.MoodEntry {
	stored := r.entries[userID]
	result := make([]*model.MoodEntry, 0, len(stored))
	for _, e := range stored {
		result = append(result, copyMoodEntry(e))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *moodRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.list(userID)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *moodRepository) ListSince(ctx context.Context, userID types.UserID, since time.Time) ([]*model.MoodEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.list(userID)
	result := make([]*model.MoodEntry, 0, len(all))
	for _, e := range all {
		if !e.CreatedAt.Before(since) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *moodRepository) DeleteAll(ctx context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, userID)
	return nil
}
