package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/model/auth"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"github.com/saathi-app/saathi/pkg/usecase"
	"github.com/saathi-app/saathi/pkg/utils/errutil"
)

// userIDFrom extracts the authenticated user from the request
// context. The auth middleware guarantees a token is present on
// protected routes.
func userIDFrom(r *http.Request) (types.UserID, bool) {
	token, ok := auth.TokenFromContext(r.Context())
	if !ok {
		return "", false
	}
	return types.UserID(token.Sub), true
}

type chatRequest struct {
	Message       string `json:"message"`
	ExerciseShown bool   `json:"breathingExerciseShown"`
}

type chatResponse struct {
	Response     string `json:"response"`
	Success      bool   `json:"success"`
	ShowExercise bool   `json:"showBreathingExercise"`
}

// chatHandler runs the chat pipeline for one message.
func chatHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid chat request"), http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Message is required"})
			return
		}

		out, err := chatUC.Chat(r.Context(), usecase.ChatInput{
			UserID:        userID,
			Message:       req.Message,
			ExerciseShown: req.ExerciseShown,
		})
		if err != nil {
			// Catches whitespace-only messages that pass the decode check.
			if errors.Is(err, usecase.ErrEmptyMessage) {
				writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "Message is required"})
				return
			}
			// The generation failure detail stays in the log.
			errutil.Handle(r.Context(), err, "chat pipeline failed")
			writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{Error: "Failed to process message"})
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, chatResponse{
			Response:     out.Response,
			Success:      true,
			ShowExercise: out.ShowExercise,
		})
	}
}

type chatTurn struct {
	ID           string    `json:"id"`
	Text         string    `json:"message"`
	Role         string    `json:"role"`
	Sentiment    string    `json:"sentiment"`
	Intervention bool      `json:"intervention"`
	CreatedAt    time.Time `json:"created_at"`
}

type chatHistoryResponse struct {
	Messages []chatTurn `json:"messages"`
}

// chatHistoryHandler returns recent turns, newest first.
func chatHistoryHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		msgs, err := chatUC.History(r.Context(), userID, limit)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		resp := chatHistoryResponse{Messages: make([]chatTurn, 0, len(msgs))}
		for _, msg := range msgs {
			resp.Messages = append(resp.Messages, toChatTurn(msg))
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func toChatTurn(msg *model.Message) chatTurn {
	return chatTurn{
		ID:           msg.ID.String(),
		Text:         msg.Text,
		Role:         msg.Role.String(),
		Sentiment:    msg.Sentiment.String(),
		Intervention: msg.Intervention,
		CreatedAt:    msg.CreatedAt,
	}
}
