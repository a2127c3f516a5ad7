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

type moodDoc struct {
	ID        string    `firestore:"ID"`
	UserID    string    `firestore:"UserID"`
	Score     int       `firestore:"Score"`
	Label     string    `firestore:"Label"`
	Notes     string    `firestore:"Notes"`
	Triggers  []string  `firestore:"Triggers"`
	CreatedAt time.Time `firestore:"CreatedAt"`
}

func toMoodDoc(e *model.MoodEntry) *moodDoc {
	return &moodDoc{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		Score:     e.Score,
		Label:     e.Label,
		Notes:     e.Notes,
		Triggers:  e.Triggers,
		CreatedAt: e.CreatedAt,
	}
}

func fromMoodDoc(d *moodDoc) *model.MoodEntry {
	return &model.MoodEntry{
		ID:        types.MoodEntryID(d.ID),
		UserID:    types.UserID(d.UserID),
		Score:     d.Score,
		Label:     d.Label,
		Notes:     d.Notes,
		Triggers:  d.Triggers,
		CreatedAt: d.CreatedAt,
	}
}

type moodRepository struct {
	client *firestore.Client
}

func newMoodRepository(client *firestore.Client) *moodRepository {
	return &moodRepository{client: client}
}

func (r *moodRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionMoods)
}

func (r *moodRepository) Create(ctx context.Context, entry *model.MoodEntry) (*model.MoodEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid mood entry")
	}
	if err := entry.UserID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid mood entry user ID")
	}

	created := *entry
	if created.ID == "" {
		created.ID = types.NewMoodEntryID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toMoodDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create mood entry", goerr.V("userID", entry.UserID))
	}

	return &created, nil
}

func (r *moodRepository) collect(ctx context.Context, query firestore.Query) ([]*model.MoodEntry, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.MoodEntry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate mood entries")
		}

		var d moodDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal mood entry")
		}
		entries = append(entries, fromMoodDoc(&d))
	}
	return entries, nil
}

func (r *moodRepository) ListRecent(ctx context.Context, userID types.UserID, limit int) ([]*model.MoodEntry, error) {
	query := r.collection().
		Where("UserID", "==", userID.String()).
		OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.collect(ctx, query)
}

func (r *moodRepository) ListSince(ctx context.Context, userID types.UserID, since time.Time) ([]*model.MoodEntry, error) {
	query := r.collection().
		Where("UserID", "==", userID.String()).
		Where("CreatedAt", ">=", since).
		OrderBy("CreatedAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *moodRepository) DeleteAll(ctx context.Context, userID types.UserID) error {
	iter := r.collection().Where("UserID", "==", userID.String()).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate mood entries for deletion")
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to enqueue mood entry deletion")
		}
	}
	bw.End()
	return nil
}
