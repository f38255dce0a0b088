package practice

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/quizprep/internal/feedback"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/quiz"
	"github.com/abhisek/quizprep/internal/store"
)

var (
	// ErrEmptyParseResult is returned when the response yielded no usable
	// question. The session keeps its previous questions.
	ErrEmptyParseResult = errors.New("no questions could be parsed from the response")

	// ErrNotFinalized is returned when feedback is requested before the
	// round was scored.
	ErrNotFinalized = errors.New("round not finished")

	// ErrRoundChanged is returned by Feedback when another round was
	// loaded while the request was in flight. The text is discarded.
	ErrRoundChanged = errors.New("round changed while feedback was pending")
)

// RoundRecorder persists finalized rounds.
type RoundRecorder interface {
	AppendRoundEvent(ctx context.Context, data store.RoundEventData) error
}

// Service runs the practice workflow. Every call blocks until the
// underlying completion returns.
type Service struct {
	generator questiongen.Generator
	feedback  feedback.Requestor
	recorder  RoundRecorder
}

// NewService creates a practice service. recorder may be nil.
func NewService(gen questiongen.Generator, fb feedback.Requestor, recorder RoundRecorder) *Service {
	return &Service{generator: gen, feedback: fb, recorder: recorder}
}

// Generate requests count questions for the session's profile and loads
// them into the quiz. On ErrEmptyParseResult the returned result still
// carries the skipped-segment diagnostics and the session is unchanged.
func (s *Service) Generate(ctx context.Context, sess *Session, count int) (*questiongen.ParseResult, error) {
	res, err := s.generator.Generate(ctx, sess.Profile, count)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return res, ErrEmptyParseResult
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Quiz.Load(res.Questions)
	sess.LastParse = res
	sess.Feedback = ""
	sess.recorded = false
	return res, nil
}

// Finish scores the round and records it in the event log once.
func (s *Service) Finish(ctx context.Context, sess *Session) (*quiz.Results, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	results, err := sess.Quiz.Finalize()
	if err != nil {
		return nil, err
	}

	if s.recorder != nil && !sess.recorded {
		data := store.RoundEventData{
			SessionID:       sess.ID,
			Role:            sess.Profile.Role,
			Skills:          sess.Profile.Skills,
			ExperienceYears: sess.Profile.ExperienceYears,
			QuestionCount:   results.Total,
			Correct:         results.Correct,
			Wrong:           results.Wrong,
			Summary:         results.Summary(),
		}
		if err := s.recorder.AppendRoundEvent(context.WithoutCancel(ctx), data); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record round: %v\n", err)
		}
	}
	sess.recorded = true
	return results, nil
}

// Feedback requests an evaluation of the finalized round and keeps the
// text on the session. The text is stored only if the same round is still
// loaded when the request returns.
func (s *Service) Feedback(ctx context.Context, sess *Session) (string, error) {
	sess.mu.Lock()
	results := sess.Quiz.Results()
	finalized := sess.Quiz.Phase() == quiz.PhaseFinalized
	sess.mu.Unlock()
	if !finalized || results == nil {
		return "", ErrNotFinalized
	}

	text, err := s.feedback.RequestFeedback(ctx, sess.Profile, results.Summary())
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Quiz.Results() != results {
		return "", ErrRoundChanged
	}
	sess.Feedback = text
	return text, nil
}
