package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[types.UserID]*model.Profile
	byEmail  map[string]types.UserID
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[types.UserID]*model.Profile),
		byEmail:  make(map[string]types.UserID),
	}
}

func copyProfile(p *model.Profile) *model.Profile {
	copied := *p
	if p.PasswordHash != nil {
		copied.PasswordHash = make([]byte, len(p.PasswordHash))
		copy(copied.PasswordHash, p.PasswordHash)
	}
	return &copied
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid profile")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(profile.Email)
	if _, exists := r.byEmail[key]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "email already registered", goerr.V("email", profile.Email))
	}

	created := copyProfile(profile)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.profiles[created.UserID] = created
	r.byEmail[key] = created.UserID
	return copyProfile(created), nil
}

func (r *profileRepository) Get(ctx context.Context, userID types.UserID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
	}
	return copyProfile(profile), nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("email", email))
	}
	return copyProfile(r.profiles[userID]), nil
}

func (r *profileRepository) Delete(ctx context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
	}

	delete(r.byEmail, emailKey(profile.Email))
	delete(r.profiles, userID)
	return nil
}
