package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type tokenDoc struct {
	ID        string    `firestore:"ID"`
	Secret    string    `firestore:"Secret"`
	Sub       string    `firestore:"Sub"`
	Email     string    `firestore:"Email"`
	Name      string    `firestore:"Name"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	ExpiresAt time.Time `firestore:"ExpiresAt"`
}

func toTokenDoc(t *auth.Token) *tokenDoc {
	return &tokenDoc{
		ID:        t.ID.String(),
		Secret:    t.Secret.String(),
		Sub:       t.Sub,
		Email:     t.Email,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}

func fromTokenDoc(d *tokenDoc) *auth.Token {
	return &auth.Token{
		ID:        auth.TokenID(d.ID),
		Secret:    auth.TokenSecret(d.Secret),
		Sub:       d.Sub,
		Email:     d.Email,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

type tokenRepository struct {
	client *firestore.Client
}

func newTokenRepository(client *firestore.Client) *tokenRepository {
	return &tokenRepository{client: client}
}

func (r *tokenRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionSessions)
}

func (f *Firestore) PutToken(ctx context.Context, token *auth.Token) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token")
	}

	docRef := f.tokens.collection().Doc(token.ID.String())
	if _, err := docRef.Set(ctx, toTokenDoc(token)); err != nil {
		return goerr.Wrap(err, "failed to put token")
	}
	return nil
}

func (f *Firestore) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	if err := tokenID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid token ID")
	}

	doc, err := f.tokens.collection().Doc(tokenID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, goerr.Wrap(err, "failed to get token")
	}

	var d tokenDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal token")
	}
	return fromTokenDoc(&d), nil
}

func (f *Firestore) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if err := tokenID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid token ID")
	}

	docRef := f.tokens.collection().Doc(tokenID.String())
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return goerr.Wrap(err, "failed to get token for deletion")
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete token")
	}
	return nil
}

func (f *Firestore) DeleteExpiredTokens(ctx context.Context, before time.Time) (int, error) {
	iter := f.tokens.collection().Where("ExpiresAt", "<", before).Documents(ctx)
	defer iter.Stop()

	removed := 0
	bw := f.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return removed, goerr.Wrap(err, "failed to iterate expired tokens")
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return removed, goerr.Wrap(err, "failed to enqueue token deletion")
		}
		removed++
	}
	bw.End()
	return removed, nil
}
