package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type messageDoc struct {
	ID           string    `firestore:"ID"`
	UserID       string    `firestore:"UserID"`
	Text         string    `firestore:"Text"`
	Role         string    `firestore:"Role"`
	Sentiment    string    `firestore:"Sentiment"`
	Intervention bool      `firestore:"Intervention"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
}

func toMessageDoc(m *model.Message) *messageDoc {
	return &messageDoc{
		ID:           m.ID.String(),
		UserID:       m.UserID.String(),
		Text:         m.Text,
		Role:         m.Role.String(),
		Sentiment:    m.Sentiment.String(),
		Intervention: m.Intervention,
		CreatedAt:    m.CreatedAt,
	}
}

func fromMessageDoc(d *messageDoc) *model.Message {
	return &model.Message{
		ID:           types.MessageID(d.ID),
		UserID:       types.UserID(d.UserID),
		Text:         d.Text,
		Role:         types.Role(d.Role),
		Sentiment:    types.Sentiment(d.Sentiment),
		Intervention: d.Intervention,
		CreatedAt:    d.CreatedAt,
	}
}

type messageRepository struct {
	client *firestore.Client
}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{client: client}
}

func (r *messageRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionMessages)
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if err := msg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid message")
	}
	if err := msg.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid message user ID")
	}

	created := *msg
	if created.ID == "" {
		created.ID = types.NewMessageID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toMessageDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create message", goerr.V("userID", msg.UserID))
	}

	return &created, nil
}

func (r *messageRepository) query(userID types.UserID) firestore.Query {
	return r.collection().
		Where("UserID", "==", userID.String()).
		OrderBy("CreatedAt", firestore.Desc)
}

func (r *messageRepository) collect(ctx context.Context, query firestore.Query) ([]*model.Message, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	messages := make([]*model.Message, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages")
		}

		var d messageDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal message")
		}
		messages = append(messages, fromMessageDoc(&d))
	}
	return messages, nil
}

func (r *messageRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.Message, error) {
	query := r.query(userID)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.collect(ctx, query)
}

func (r *messageRepository) ListAll(ctx context.Context, userID types.UserID) ([]*model.Message, error) {
	return r.collect(ctx, r.query(userID))
}

func (r *messageRepository) DeleteAll(ctx context.Context, userID types.UserID) error {
	iter := r.collection().Where("UserID", "==", userID.String()).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate messages for deletion")
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue message deletion")
		}
	}
	bw.End()
	return nil
}
