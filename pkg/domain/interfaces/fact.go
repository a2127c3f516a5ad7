package interfaces

import (
	"context"

	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

// FactRepository persists the per-user fact set.
type FactRepository interface {
	// Get retrieves the fact set for a user. A user with no stored facts
	// yields an empty set, not an error.
	Get(ctx context.Context, userID types.UserID) (model.FactSet, error)

	// Put upserts the whole fact set for a user.
	Put(ctx context.Context, userID types.UserID, facts model.FactSet) error

	// Delete removes the fact set for a user. Deleting an absent set is a
	// no-op.
	Delete(ctx context.Context, userID types.UserID) error
}
