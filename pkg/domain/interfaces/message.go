package interfaces

import (
	"context"

	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

// MessageRepository persists chat turns. Turns are append-only.
type MessageRepository interface {
	// Create inserts a new turn. ID and CreatedAt are assigned by the
	// repository when unset.
	Create(ctx context.Context, msg *model.Message) (*model.Message, error)

	// ListRecent retrieves up to limit turns for a user, newest first.
	ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.Message, error)

	// ListAll retrieves every turn for a user, newest first.
	ListAll(ctx context.Context, userID types.UserID) ([]*model.Message, error)

	// DeleteAll removes every turn for a user.
	DeleteAll(ctx context.Context, userID types.UserID) error
}
