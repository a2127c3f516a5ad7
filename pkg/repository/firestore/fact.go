package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// factDoc is the Firestore document representation of a user fact set.
// Values are stored as native string/number/bool fields; anything else in a
// stored document is rejected on read.
type factDoc struct {
	UserID    string         `firestore:"UserID"`
	Facts     map[string]any `firestore:"Facts"`
	UpdatedAt time.Time      `firestore:"UpdatedAt"`
}

func toFactDoc(userID types.UserID, facts model.FactSet) *factDoc {
	native := make(map[string]any, len(facts))
	for k, v := range facts {
		native[k] = v.Native()
	}
	return &factDoc{
		UserID:    userID.String(),
		Facts:     native,
		UpdatedAt: time.Now().UTC(),
	}
}

func fromFactDoc(d *factDoc) (model.FactSet, error) {
	facts := make(model.FactSet, len(d.Facts))
	for k, raw := range d.Facts {
		v, err := model.FactFromNative(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "stored fact has unsupported shape", goerr.V("key", k))
		}
		facts[k] = v
	}
	return facts, nil
}

type factRepository struct {
	client *firestore.Client
}

func newFactRepository(client *firestore.Client) *factRepository {
	return &factRepository{client: client}
}

func (r *factRepository) doc(userID types.UserID) *firestore.DocumentRef {
	return r.client.Collection(collectionFacts).Doc(userID.String())
}

func (r *factRepository) Get(ctx context.Context, userID types.UserID) (model.FactSet, error) {
	doc, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.FactSet{}, nil
		}
		return nil, goerr.Wrap(err, "failed to get fact set", goerr.V("userID", userID))
	}

	var d factDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal fact set", goerr.V("userID", userID))
	}

	return fromFactDoc(&d)
}

func (r *factRepository) Put(ctx context.Context, userID types.UserID, facts model.FactSet) error {
	if _, err := r.doc(userID).Set(ctx, toFactDoc(userID, facts)); err != nil {
		return goerr.Wrap(err, "failed to put fact set", goerr.V("userID", userID))
	}
	return nil
}

func (r *factRepository) Delete(ctx context.Context, userID types.UserID) error {
	if _, err := r.doc(userID).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete fact set", goerr.V("userID", userID))
	}
	return nil
}
