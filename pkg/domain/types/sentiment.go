package types

import "fmt"

// Sentiment is the coarse sentiment label attached to a stored chat turn.
// It is fixed per authorship ("neutral" for user turns, "positive" for
// assistant turns), not computed from content.
type Sentiment string

const (
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// IsValid checks if the sentiment is valid
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentNeutral, SentimentPositive, SentimentNegative:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sentiment
func (s Sentiment) String() string {
	return string(s)
}

// ParseSentiment parses a string into a Sentiment
func ParseSentiment(s string) (Sentiment, error) {
	sentiment := Sentiment(s)
	if !sentiment.IsValid() {
		return "", fmt.Errorf("invalid sentiment: %s", s)
	}
	return sentiment, nil
}
