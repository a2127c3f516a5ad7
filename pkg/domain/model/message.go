package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

// Message is a single chat turn. Turns are immutable once written and
// append-only per user conversation.
type Message struct {
	ID     types.MessageID
	UserID types.UserID
	// Text never reaches log sinks. See utils/logging.
	Text string `masq:"secret"`
	Role types.Role
	// Sentiment is a coarse fixed label, not computed from content.
	Sentiment types.Sentiment
	// Intervention marks assistant turns that surfaced the breathing
	// exercise. It lets the server reconstruct the escalation state of a
	// conversation from its history.
	Intervention bool
	CreatedAt    time.Time
}

// Validate checks the message invariants before persistence.
func (m *Message) Validate() error {
	if m.Text == "" {
		return goerr.New("message text is required")
	}
	if !m.Role.IsValid() {
		return goerr.New("invalid message role", goerr.V("role", m.Role))
	}
	if m.Sentiment != "" && !m.Sentiment.IsValid() {
		return goerr.New("invalid message sentiment", goerr.V("sentiment", m.Sentiment))
	}
	return nil
}

// NewUserTurn builds the stored form of an incoming user message.
func NewUserTurn(userID types.UserID, text string) *Message {
	return &Message{
		UserID:    userID,
		Text:      text,
		Role:      types.RoleUser,
		Sentiment: types.SentimentNeutral,
	}
}

// NewAssistantTurn builds the stored form of a generated reply.
func NewAssistantTurn(userID types.UserID, text string, intervention bool) *Message {
	return &Message{
		UserID:       userID,
		Text:         text,
		Role:         types.RoleAssistant,
		Sentiment:    types.SentimentPositive,
		Intervention: intervention,
	}
}
