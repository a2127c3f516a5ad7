package http

import (
	"net/http"

	"github.com/saathi-app/saathi/pkg/domain/model/auth"
	"github.com/saathi-app/saathi/pkg/usecase"
)

// accountExportHandler returns the full privacy export as JSON.
func accountExportHandler(accountUC *usecase.AccountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		out, err := accountUC.Export(r.Context(), userID)
		if err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		w.Header().Set("Content-Disposition", `attachment; filename="saathi-data-export.json"`)
		writeJSON(r.Context(), w, http.StatusOK, out)
	}
}

// accountDeleteHandler removes the account and ends the session.
func accountDeleteHandler(accountUC *usecase.AccountUseCase, authUC usecase.AuthUseCaseInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		if err := accountUC.Delete(r.Context(), userID); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}

		if tokenIDCookie, err := r.Cookie(cookieTokenID); err == nil {
			//nolint:errcheck // the account is already gone
			authUC.Logout(r.Context(), auth.TokenID(tokenIDCookie.Value))
		}
		clearTokenCookies(w, r)

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// accountClearChatHandler deletes the conversation history.
func accountClearChatHandler(accountUC *usecase.AccountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		if err := accountUC.ClearChat(r.Context(), userID); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// accountClearMemoryHandler deletes the stored fact set.
func accountClearMemoryHandler(accountUC *usecase.AccountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFrom(r)
		if !ok {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		if err := accountUC.ClearMemory(r.Context(), userID); err != nil {
			handleUseCaseError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
