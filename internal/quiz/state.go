package quiz

import "github.com/abhisek/quizprep/internal/questiongen"

// Phase represents the lifecycle phase of a quiz.
type Phase int

const (
	PhaseEmpty      Phase = iota // No question set loaded
	PhaseInProgress              // Questions loaded, accepting selections
	PhaseFinalized               // All answered and scored
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Answer is the selection state of one loaded question.
type Answer struct {
	// Selected is nil until the candidate picks an option.
	Selected *questiongen.Option

	// CorrectLabel is copied from the question; empty when absent.
	CorrectLabel string

	// QuestionText is copied from the question for summaries.
	QuestionText string
}
