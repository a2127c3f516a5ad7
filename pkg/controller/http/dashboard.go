package http

import (
	"net/http"

	"github.com/saathi-app/saathi/pkg/usecase"
)

type dashboardResponse struct {
	MoodAverage float64             `json:"moodAverage"`
	MoodTrend   string              `json:"moodTrend"`
	MoodCount   int                 `json:"moodCount"`
	RecentMoods []moodEntryResponse `json:"recentMoods"`
	RecentTurns []chatTurn          `json:"recentMessages"`
	FactCount   int                 `json:"factCount"`
}

// dashboardHandler aggregates the home page stats.
func dashboardHandler(dashUC *usecase.DashboardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		out, err := dashUC.Get(r.Context(), userID)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := dashboardResponse{
			MoodAverage: out.MoodAverage,
			MoodTrend:   string(out.MoodTrend),
			MoodCount:   out.MoodCount,
			RecentMoods: make([]moodEntryResponse, 0, len(out.RecentMoods)),
			RecentTurns: make([]chatTurn, 0, len(out.RecentTurns)),
			FactCount:   out.FactCount,
		}
		for _, entry := range out.RecentMoods {
			resp.RecentMoods = append(resp.RecentMoods, toMoodEntryResponse(entry))
		}
		for _, msg := range out.RecentTurns {
			resp.RecentTurns = append(resp.RecentTurns, toChatTurn(msg))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
