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

type messageRepository struct {
	mu    sync.RWMutex
	turns map[types.UserID][]*model.Message
}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		turns: make(map[types.UserID][]*model.Message),
	}
}

func copyMessage(m *model.Message) *model.Message {
	copied := *m
	return &copied
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid message")
	}
	if err := msg.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid message user ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyMessage(msg)
	if created.ID == "" {
		created.ID = types.NewMessageID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.turns[msg.UserID] = append(r.turns[msg.UserID], created)
	return copyMessage(created), nil
}

func (r *messageRepository) list(userID types.UserID) []*model.Message {
	stored := r.turns[userID]
	result := make([]*model.Message, 0, len(stored))
	for _, m := range stored {
		result = append(result, copyMessage(m))
	}
	// Newest first; insertion order breaks timestamp ties.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *messageRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.list(userID)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *messageRepository) ListAll(ctx context.Context, userID types.UserID) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.list(userID), nil
}

func (r *messageRepository) DeleteAll(ctx context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.turns, userID)
	return nil
}
