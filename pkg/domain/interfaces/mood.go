package interfaces

import (
	"context"
	"time"

	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

// MoodRepository persists mood samples.
type MoodRepository interface {
	// Create inserts a new entry. ID and CreatedAt are assigned by the
	// repository when unset.
	Create(ctx context.Context, entry *model.MoodEntry) (*model.MoodEntry, error)

	// ListRecent retrieves up to limit entries for a user, newest first.
	ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.MoodEntry, error)

	// ListSince retrieves entries created at or after the given time,
	// newest first.
	ListSince(ctx context.Context, userID types.UserID, since time.Time) ([]*model.MoodEntry, error)

	// DeleteAll removes every entry for a user.
	DeleteAll(ctx context.Context, userID types.UserID) error
}
