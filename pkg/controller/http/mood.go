package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/usecase"
	"github.com/saathi-app/saathi/pkg/utils/errutil"
)

type moodRequest struct {
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Notes    string   `json:"notes"`
	Triggers []string `json:"triggers"`
}

type moodEntryResponse struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Label     string    `json:"label"`
	Notes     string    `json:"notes"`
	Triggers  []string  `json:"triggers"`
	CreatedAt time.Time `json:"created_at"`
}

type moodListResponse struct {
	Entries []moodEntryResponse `json:"entries"`
}

func toMoodEntryResponse(entry *model.MoodEntry) moodEntryResponse {
	return moodEntryResponse{
		ID:        entry.ID.String(),
		Score:     entry.Score,
		Label:     entry.Label,
		Notes:     entry.Notes,
		Triggers:  entry.Triggers,
		CreatedAt: entry.CreatedAt,
	}
}

// moodCreateHandler records one mood check-in.
func moodCreateHandler(moodUC *usecase.MoodUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		var req moodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid mood request"), http.StatusBadRequest)
			return
		}

		entry, err := moodUC.Record(r.Context(), userID, usecase.MoodInput{
			Score:    req.Score,
			Label:    req.Label,
			Notes:    req.Notes,
			Triggers: req.Triggers,
		})
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, toMoodEntryResponse(entry))
	}
}

// moodListHandler returns recent entries, newest first.
func moodListHandler(moodUC *usecase.MoodUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		entries, err := moodUC.List(r.Context(), userID, limit)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := moodListResponse{Entries: make([]moodEntryResponse, 0, len(entries))}
		for _, entry := range entries {
			resp.Entries = append(resp.Entries, toMoodEntryResponse(entry))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
