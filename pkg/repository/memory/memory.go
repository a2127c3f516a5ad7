package memory

import (
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory Repository implementation for development and
// tests.
type Memory struct {
	fact    *factRepository
	message *messageRepository
	mood    *moodRepository
	profile *profileRepository
	tokens  *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		fact:    newFactRepository(),
		message: newMessageRepository(),
		mood:    newMoodRepository(),
		profile: newProfileRepository(),
		tokens:  newTokenStore(),
	}
}

func (m *Memory) Fact() interfaces.FactRepository {
	return m.fact
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.message
}

func (m *Memory) Mood() interfaces.MoodRepository {
	return m.mood
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Close() error {
	return nil
}
