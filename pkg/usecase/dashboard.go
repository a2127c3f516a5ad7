package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardWindow      = 7 * 24 * time.Hour
	dashboardRecentMoods = 5
	dashboardRecentTurns = 5
)

// DashboardUseCase aggregates a user's recent activity for the home
// page.
type DashboardUseCase struct {
	repo interfaces.Repository
}

func NewDashboardUseCase(repo interfaces.Repository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

type DashboardOutput struct {
	MoodAverage float64
	MoodTrend   model.MoodTrend
	MoodCount   int
	RecentMoods []*model.MoodEntry
	RecentTurns []*model.Message
	FactCount   int
}

// Get assembles the dashboard from three independent reads running
// concurrently.
func (uc *DashboardUseCase) Get(ctx context.Context, userID types.UserID) (*DashboardOutput, error) {
	var (
		weekMoods []*model.MoodEntry
		turns     []*model.Message
		facts     model.FactSet
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		weekMoods, err = uc.repo.Mood().ListSince(egCtx, userID, time.Now().Add(-dashboardWindow))
		return err
	})
	eg.Go(func() error {
		var err error
		turns, err = uc.repo.Message().ListRecent(egCtx, userID, dashboardRecentTurns)
		return err
	})
	eg.Go(func() error {
		var err error
		facts, err = uc.repo.Fact().Get(egCtx, userID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to assemble dashboard")
	}

	recentMoods := weekMoods
	if len(recentMoods) > dashboardRecentMoods {
		recentMoods = recentMoods[:dashboardRecentMoods]
	}

	return &DashboardOutput{
		MoodAverage: model.ScoreAverage(weekMoods),
		MoodTrend:   model.TrendOf(weekMoods),
		MoodCount:   len(weekMoods),
		RecentMoods: recentMoods,
		RecentTurns: turns,
		FactCount:   len(facts),
	}, nil
}
