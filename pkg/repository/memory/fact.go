package memory

import (
	"context"
	"sync"

	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

type factRepository struct {
	mu   sync.RWMutex
	sets map[types.UserID]model.FactSet
}

func newFactRepository() *factRepository {
	return &factRepository{
		sets: make(map[types.UserID]model.FactSet),
	}
}

func (r *factRepository) Get(ctx context.Context, userID types.UserID) (model.FactSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	facts, ok := r.sets[userID]
	if !ok {
		return model.FactSet{}, nil
	}
	return facts.Clone(), nil
}

func (r *factRepository) Put(ctx context.Context, userID types.UserID, facts model.FactSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sets[userID] = facts.Clone()
	return nil
}

func (r *factRepository) Delete(ctx context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sets, userID)
	return nil
}
