package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

// MoodEntry is a single self-reported mood sample. The chat pipeline reads
// these for context; only the mood tracker writes them.
type MoodEntry struct {
	ID     types.MoodEntryID
	UserID types.UserID
	// Score is 1 (very sad) to 10 (very happy).
	Score int
	Label string
	// Notes never reach log sinks. See utils/logging.
	Notes     string `masq:"secret"`
	Triggers  []string
	CreatedAt time.Time
}

const (
	MoodScoreMin = 1
	MoodScoreMax = 10
)

// Validate checks the entry before persistence.
func (e *MoodEntry) Validate() error {
	if e.Score < MoodScoreMin || e.Score > MoodScoreMax {
		return goerr.New("mood score out of range",
			goerr.V("score", e.Score),
			goerr.V("min", MoodScoreMin),
			goerr.V("max", MoodScoreMax),
		)
	}
	return nil
}

// MoodTrend summarizes the direction of recent mood entries.
type MoodTrend string

const (
	MoodTrendImproving MoodTrend = "improving"
	MoodTrendDeclining MoodTrend = "declining"
	MoodTrendStable    MoodTrend = "stable"
)

// TrendOf compares the three newest entries against the three before them.
// Entries must be ordered newest first. A half-point shift in either
// direction counts as a trend; anything less is stable.
func TrendOf(entries []*MoodEntry) MoodTrend {
	if len(entries) < 2 {
		return MoodTrendStable
	}

	recent := entries[:min(3, len(entries))]
	older := entries[len(recent):min(6, len(entries))]
	if len(older) == 0 {
		return MoodTrendStable
	}

	recentAvg := scoreAverage(recent)
	olderAvg := scoreAverage(older)

	switch {
	case recentAvg > olderAvg+0.5:
		return MoodTrendImproving
	case recentAvg < olderAvg-0.5:
		return MoodTrendDeclining
	default:
		return MoodTrendStable
	}
}

func scoreAverage(entries []*MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Score
	}
	return float64(sum) / float64(len(entries))
}

// ScoreAverage returns the mean score of the entries, 0 when empty.
func ScoreAverage(entries []*MoodEntry) float64 {
	return scoreAverage(entries)
}
