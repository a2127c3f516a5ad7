package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies a user account. It is the stable identity every
// persisted record is keyed by.
type UserID string

func NewUserID() UserID {
	return UserID(uuid.New().String())
}

func (id UserID) String() string {
	return string(id)
}

func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID is empty")
	}
	return nil
}

// MessageID identifies a single chat turn.
type MessageID string

func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

func (id MessageID) String() string {
	return string(id)
}

// MoodEntryID identifies a mood sample.
type MoodEntryID string

func NewMoodEntryID() MoodEntryID {
	return MoodEntryID(uuid.New().String())
}

func (id MoodEntryID) String() string {
	return string(id)
}
