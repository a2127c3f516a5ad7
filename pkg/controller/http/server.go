// Package http exposes the Saathi API over chi.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/saathi-app/saathi/pkg/usecase"
	"github.com/saathi-app/saathi/pkg/utils/errutil"
	"github.com/saathi-app/saathi/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()
	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authSignupHandler(uc.Auth))
		r.Post("/login", authLoginHandler(uc.Auth))
		r.Post("/logout", authLogoutHandler(uc.Auth))
		r.Get("/me", authMeHandler(uc.Auth))
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(uc.Auth))

		r.Post("/api/chat", chatHandler(uc.Chat))
		r.Get("/api/chat/history", chatHistoryHandler(uc.Chat))

		r.Post("/api/mood", moodCreateHandler(uc.Mood))
		r.Get("/api/mood", moodListHandler(uc.Mood))

		r.Get("/api/dashboard", dashboardHandler(uc.Dashboard))

		r.Get("/api/account/export", accountExportHandler(uc.Account))
		r.Delete("/api/account", accountDeleteHandler(uc.Account, uc.Auth))
		r.Post("/api/account/clear-chat", accountClearChatHandler(uc.Account))
		r.Post("/api/account/clear-memory", accountClearMemoryHandler(uc.Account))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// handleUseCaseError maps the use case error taxonomy onto HTTP
// status codes.
func handleUseCaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage),
		errors.Is(err, usecase.ErrInvalidMood),
		errors.Is(err, usecase.ErrInvalidInput):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCredential),
		errors.Is(err, usecase.ErrTokenInvalid):
		errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEmailTaken):
		errutil.HandleHTTP(ctx, w, err, http.StatusConflict)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}
