package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileDoc struct {
	UserID       string    `firestore:"UserID"`
	Email        string    `firestore:"Email"`
	DisplayName  string    `firestore:"DisplayName"`
	PasswordHash []byte    `firestore:"PasswordHash"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
}

func toProfileDoc(p *model.Profile) *profileDoc {
	return &profileDoc{
		UserID:       p.UserID.String(),
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		DisplayName:  p.DisplayName,
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt,
	}
}

func fromProfileDoc(d *profileDoc) *model.Profile {
	return &model.Profile{
		UserID:       types.UserID(d.UserID),
		Email:        d.Email,
		DisplayName:  d.DisplayName,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

type profileRepository struct {
	client *firestore.Client
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionProfiles)
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid profile")
	}

	if _, err := r.GetByEmail(ctx, profile.Email); err == nil {
		return nil, goerr.Wrap(ErrAlreadyExists, "email already registered", goerr.V("email", profile.Email))
	}

	created := *profile
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(created.UserID.String())
	if _, err := docRef.Create(ctx, toProfileDoc(&created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "profile already exists", goerr.V("userID", created.UserID))
		}
		return nil, goerr.Wrap(err, "failed to create profile", goerr.V("userID", created.UserID))
	}

	return &created, nil
}

func (r *profileRepository) Get(ctx context.Context, userID types.UserID) (*model.Profile, error) {
	doc, err := r.collection().Doc(userID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("userID", userID))
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("userID", userID))
	}
	return fromProfileDoc(&d), nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	iter := r.collection().Where("Email", "==", key).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query profile by email", goerr.V("email", email))
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("email", email))
	}
	return fromProfileDoc(&d), nil
}

func (r *profileRepository) Delete(ctx context.Context, userID types.UserID) error {
	docRef := r.collection().Doc(userID.String())
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
		}
		return goerr.Wrap(err, "failed to get profile for deletion", goerr.V("userID", userID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete profile", goerr.V("userID", userID))
	}
	return nil
}
