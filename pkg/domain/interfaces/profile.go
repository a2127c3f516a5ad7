package interfaces

import (
	"context"

	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

// ProfileRepository persists user accounts.
type ProfileRepository interface {
	// Create inserts a new profile. Fails with ErrAlreadyExists when the
	// email is already registered.
	Create(ctx context.Context, profile *model.Profile) (*model.Profile, error)

	// Get retrieves a profile by user ID.
	Get(ctx context.Context, userID types.UserID) (*model.Profile, error)

	// GetByEmail retrieves a profile by email address.
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)

	// Delete removes a profile.
	Delete(ctx context.Context, userID types.UserID) error
}
