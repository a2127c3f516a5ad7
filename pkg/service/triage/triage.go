// Package triage decides when a breathing exercise should accompany
// a chat response, based on distress language in the user's message.
package triage

import "strings"

// Tier identifies which keyword tier triggered a classification.
type Tier string

const (
	TierNone   Tier = "none"
	TierStress Tier = "stress"
	TierCrisis Tier = "crisis"
)

// Decision is the output of a single classification.
type Decision struct {
	NeedsExercise bool
	Tier          Tier
	Keyword       string
}

// Classifier matches distress keywords against user messages. The
// zero value is not usable; construct with New.
type Classifier struct {
	stress []string
	crisis []string
}

type Option func(*Classifier)

// WithExtraStressKeywords appends deployment-specific phrases to the
// stress tier.
func WithExtraStressKeywords(keywords []string) Option {
	return func(c *Classifier) {
		c.stress = append(c.stress, lowerAll(keywords)...)
	}
}

// WithExtraCrisisKeywords appends deployment-specific phrases to the
// crisis tier.
func WithExtraCrisisKeywords(keywords []string) Option {
	return func(c *Classifier) {
		c.crisis = append(c.crisis, lowerAll(keywords)...)
	}
}

func New(opts ...Option) *Classifier {
	c := &Classifier{}
	c.stress = append(c.stress, stressKeywords...)
	c.stress = append(c.stress, sadnessKeywords...)
	c.stress = append(c.stress, avoidanceKeywords...)
	c.crisis = append(c.crisis, crisisKeywords...)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify inspects a user message. When no exercise has been shown
// yet in the conversation, any stress-tier keyword triggers one. Once
// an exercise has been shown, only crisis-tier keywords trigger
// another, so repeated mild mentions do not nag the user.
func (c *Classifier) Classify(message string, exerciseShown bool) Decision {
	text := strings.ToLower(message)

	if !exerciseShown {
		if kw, ok := match(text, c.stress); ok {
			return Decision{NeedsExercise: true, Tier: TierStress, Keyword: kw}
		}
		return Decision{Tier: TierNone}
	}

	if kw, ok := match(text, c.crisis); ok {
		return Decision{NeedsExercise: true, Tier: TierCrisis, Keyword: kw}
	}
	return Decision{Tier: TierNone}
}

func match(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, strings.ToLower(kw))
	}
	return out
}
