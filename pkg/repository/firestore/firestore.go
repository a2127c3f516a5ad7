package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
)

// Collection names. They mirror the table names of the original product
// schema so operational tooling carries over.
const (
	collectionMessages = "chat_messages"
	collectionMoods    = "mood_entries"
	collectionFacts    = "user_memory"
	collectionProfiles = "profiles"
	collectionSessions = "sessions"
)

type Firestore struct {
	client  *firestore.Client
	fact    *factRepository
	message *messageRepository
	mood    *moodRepository
	profile *profileRepository
	tokens  *tokenRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Firestore{
		client:  client,
		fact:    newFactRepository(client),
		message: newMessageRepository(client),
		mood:    newMoodRepository(client),
		profile: newProfileRepository(client),
		tokens:  newTokenRepository(client),
	}, nil
}

func (f *Firestore) Fact() interfaces.FactRepository {
	return f.fact
}

func (f *Firestore) Message() interfaces.MessageRepository {
	return f.message
}

func (f *Firestore) Mood() interfaces.MoodRepository {
	return f.mood
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
