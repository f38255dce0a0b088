// Package api serves practice sessions over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abhisek/quizprep/internal/llm"
	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/profile"
	"github.com/abhisek/quizprep/internal/quiz"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	svc      *practice.Service
	sessions *Registry
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *practice.Service, sessions *Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{svc: svc, sessions: sessions, logger: logger}
}

type errorResponse struct {
	Error      string        `json:"error"`
	Kind       string        `json:"kind,omitempty"`
	Unanswered []int         `json:"unanswered,omitempty"`
	Skipped    []skippedView `json:"skipped,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// handleError maps domain errors to HTTP responses.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *llm.ServiceError
	var incomplete *quiz.IncompleteAnswersError

	switch {
	case errors.As(err, &svcErr):
		h.logger.Warn("completion failed", "kind", svcErr.Kind, "error", err, "path", r.URL.Path)
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: svcErr.Kind})
	case errors.Is(err, llm.ErrInvalidParams):
		h.logger.Error("completion misconfigured", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, err.Error())
	case errors.As(err, &incomplete):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Unanswered: incomplete.Unanswered})
	case errors.Is(err, errBadRequest),
		errors.Is(err, profile.ErrInvalidProfile),
		errors.Is(err, quiz.ErrUnknownOption):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrUnknownQuestion):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, quiz.ErrNotLoaded),
		errors.Is(err, quiz.ErrFinalized),
		errors.Is(err, practice.ErrNotFinalized),
		errors.Is(err, practice.ErrRoundChanged):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func sessionNotFound(w http.ResponseWriter) {
	respondError(w, http.StatusNotFound, "session not found")
}
