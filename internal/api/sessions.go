package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/profile"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/quiz"
)

type createSessionRequest struct {
	Role            string   `json:"role"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

type generateRequest struct {
	Count *int `json:"count"`
}

type selectRequest struct {
	Label string `json:"label"`
}

type feedbackResponse struct {
	Feedback string `json:"feedback"`
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(r, "create_session", &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	p, err := profile.New(req.Role, req.Skills, req.ExperienceYears)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	sess := practice.NewSession(p)
	h.sessions.Add(sess)
	h.logger.Info("session created", "session_id", sess.ID, "role", p.Role)
	respondJSON(w, http.StatusCreated, createSessionResponse{ID: sess.ID})
}

// GetSession handles GET /api/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	var view sessionView
	found := h.sessions.With(chi.URLParam(r, "id"), func(s *practice.Session) {
		view = newSessionView(s)
	})
	if !found {
		sessionNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Remove(chi.URLParam(r, "id")) {
		sessionNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateQuestions handles POST /api/sessions/{id}/questions.
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, "generate_questions", &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	count := questiongen.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}

	var (
		res       *questiongen.ParseResult
		questions []questionView
		err       error
	)
	id := chi.URLParam(r, "id")
	found := h.sessions.With(id, func(s *practice.Session) {
		res, err = h.svc.Generate(r.Context(), s, count)
		if err == nil {
			questions = newQuestionViews(s.Quiz)
		}
	})
	if !found {
		sessionNotFound(w)
		return
	}

	if errors.Is(err, practice.ErrEmptyParseResult) {
		h.logger.Warn("empty parse result", "session_id", id, "skipped", len(res.Skipped))
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   err.Error(),
			Skipped: newSkippedViews(res.Skipped),
		})
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.Info("questions generated", "session_id", id,
		"requested", count, "parsed", len(res.Questions), "skipped", len(res.Skipped))

	respondJSON(w, http.StatusOK, questionsResponse{
		Questions: questions,
		Skipped:   newSkippedViews(res.Skipped),
	})
}

// SelectAnswer handles PUT /api/sessions/{id}/answers/{index}.
func (h *Handler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "question index must be an integer")
		return
	}

	var req selectRequest
	if err := decodeBody(r, "select_answer", &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	found := h.sessions.With(chi.URLParam(r, "id"), func(s *practice.Session) {
		err = s.Quiz.Select(index, req.Label)
	})
	if !found {
		sessionNotFound(w)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Finish handles POST /api/sessions/{id}/finish.
func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	var (
		results *quiz.Results
		err     error
	)
	found := h.sessions.With(chi.URLParam(r, "id"), func(s *practice.Session) {
		results, err = h.svc.Finish(r.Context(), s)
	})
	if !found {
		sessionNotFound(w)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newResultsView(results))
}

// Feedback handles POST /api/sessions/{id}/feedback.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var (
		text string
		err  error
	)
	found := h.sessions.With(chi.URLParam(r, "id"), func(s *practice.Session) {
		text, err = h.svc.Feedback(r.Context(), s)
	})
	if !found {
		sessionNotFound(w)
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, feedbackResponse{Feedback: text})
}
