package triage_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saathi-app/saathi/pkg/service/triage"
)

func TestClassify(t *testing.T) {
	c := triage.New()

	t.Run("stress keyword triggers before an exercise is shown", func(t *testing.T) {
		d := c.Classify("I'm so stressed about my exams", false)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Tier).Equal(triage.TierStress)
		gt.Value(t, d.Keyword).Equal("stressed")
	})

	t.Run("sadness and avoidance fold into the stress tier", func(t *testing.T) {
		d := c.Classify("I feel so hopeless lately", false)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Tier).Equal(triage.TierStress)

		d = c.Classify("I keep putting off my assignments", false)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Tier).Equal(triage.TierStress)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		d := c.Classify("I am SO ANXIOUS right now", false)
		gt.Bool(t, d.NeedsExercise).True()
	})

	t.Run("neutral message does not trigger", func(t *testing.T) {
		d := c.Classify("tell me about chess openings", false)
		gt.Bool(t, d.NeedsExercise).False()
		gt.Value(t, d.Tier).Equal(triage.TierNone)
	})

	t.Run("substring matching crosses word boundaries", func(t *testing.T) {
		// "pain" sits inside "painting". Tokenization would avoid
		// this, but matching is plain substring on purpose.
		d := c.Classify("I finished my painting this morning", false)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Keyword).Equal("pain")
	})

	t.Run("stress keywords are suppressed once shown", func(t *testing.T) {
		d := c.Classify("I'm still stressed about my exams", true)
		gt.Bool(t, d.NeedsExercise).False()
		gt.Value(t, d.Tier).Equal(triage.TierNone)
	})

	t.Run("crisis keywords break through the gate", func(t *testing.T) {
		d := c.Classify("I want to end it all", true)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Tier).Equal(triage.TierCrisis)
		gt.Value(t, d.Keyword).Equal("end it all")
	})

	t.Run("crisis-only phrasing does not trigger before shown", func(t *testing.T) {
		// Before an exercise is shown only the stress tier is
		// consulted. "emergency" is a crisis-tier word with no
		// stress-tier overlap.
		d := c.Classify("this is an emergency", false)
		gt.Bool(t, d.NeedsExercise).False()
	})

	t.Run("multi word phrases match", func(t *testing.T) {
		d := c.Classify("I just can't handle this anymore", false)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Keyword).Equal("can't handle")
	})
}

func TestClassifyExtraKeywords(t *testing.T) {
	c := triage.New(
		triage.WithExtraStressKeywords([]string{"Burned Out"}),
		triage.WithExtraCrisisKeywords([]string{"no way out"}),
	)

	t.Run("extra stress keyword is lowercased and matched", func(t *testing.T) {
		d := c.Classify("I'm completely burned out", false)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Keyword).Equal("burned out")
	})

	t.Run("extra crisis keyword breaks through the gate", func(t *testing.T) {
		d := c.Classify("there is no way out for me", true)
		gt.Bool(t, d.NeedsExercise).True()
		gt.Value(t, d.Tier).Equal(triage.TierCrisis)
	})
}
