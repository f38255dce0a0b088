// Package practice ties question generation, the quiz state machine and
// feedback into one practice session.
package practice

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizprep/internal/profile"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/quiz"
)

// Session is the state of one practice session. Service methods hold mu
// while they change the quiz or the feedback text; other callers own the
// session and must not share it without external locking.
type Session struct {
	mu sync.Mutex


	ID        string
	Profile   profile.Profile
	Quiz      *quiz.Quiz
	StartedAt time.Time

	// LastParse is the most recent non-empty generation result, including
	// skipped-segment diagnostics.
	LastParse *questiongen.ParseResult

	// Feedback is the text returned for the current finalized round.
	Feedback string

	recorded bool
}

// NewSession starts a session for p with an empty quiz.
func NewSession(p profile.Profile) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Profile:   p,
		Quiz:      quiz.New(),
		StartedAt: time.Now(),
	}
}

// Skipped returns the diagnostics of the last load, if any.
func (s *Session) Skipped() []questiongen.SkippedSegment {
	if s.LastParse == nil {
		return nil
	}
	return s.LastParse.Skipped
}
