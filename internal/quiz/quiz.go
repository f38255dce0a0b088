// Package quiz implements the answer-tracking state machine for one round
// of multiple-choice questions.
package quiz

import (
	"fmt"

	"github.com/abhisek/quizprep/internal/questiongen"
)

// Quiz holds one round's questions and selections. It is owned by a single
// session and is not safe for concurrent use.
type Quiz struct {
	phase     Phase
	questions []questiongen.Question
	answers   []Answer
	results   *Results
}

// New returns an empty quiz.
func New() *Quiz {
	return &Quiz{}
}

// Phase returns the current lifecycle phase.
func (q *Quiz) Phase() Phase {
	return q.phase
}

// Load replaces the question set from any phase, clearing every selection
// and any previous results. Questions are re-indexed 1..N in order.
func (q *Quiz) Load(questions []questiongen.Question) {
	q.questions = make([]questiongen.Question, len(questions))
	q.answers = make([]Answer, len(questions))
	for i, qu := range questions {
		qu.Index = i + 1
		qu.Options = append([]questiongen.Option(nil), qu.Options...)
		q.questions[i] = qu
		q.answers[i] = Answer{
			CorrectLabel: qu.CorrectLabel,
			QuestionText: qu.Text,
		}
	}
	q.results = nil
	q.phase = PhaseInProgress
}

// Reset returns the quiz to the empty phase.
func (q *Quiz) Reset() {
	*q = Quiz{}
}

// Questions returns the loaded questions in presentation order.
func (q *Quiz) Questions() []questiongen.Question {
	return append([]questiongen.Question(nil), q.questions...)
}

// Len returns the number of loaded questions.
func (q *Quiz) Len() int {
	return len(q.questions)
}

// Select records label as the answer for the 1-based question index,
// overwriting any previous selection for that index only.
func (q *Quiz) Select(index int, label string) error {
	switch q.phase {
	case PhaseEmpty:
		return ErrNotLoaded
	case PhaseFinalized:
		return ErrFinalized
	}

	if index < 1 || index > len(q.questions) {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, index)
	}
	opt, ok := q.questions[index-1].Option(label)
	if !ok {
		return fmt.Errorf("%w: %q for question %d", ErrUnknownOption, label, index)
	}

	q.answers[index-1].Selected = &opt
	return nil
}

// Selection returns the selected option for a 1-based index.
func (q *Quiz) Selection(index int) (questiongen.Option, bool) {
	if index < 1 || index > len(q.answers) {
		return questiongen.Option{}, false
	}
	sel := q.answers[index-1].Selected
	if sel == nil {
		return questiongen.Option{}, false
	}
	return *sel, true
}

// Answers returns a copy of the answer state in presentation order.
func (q *Quiz) Answers() []Answer {
	out := make([]Answer, len(q.answers))
	for i, a := range q.answers {
		out[i] = a
		if a.Selected != nil {
			sel := *a.Selected
			out[i].Selected = &sel
		}
	}
	return out
}

// Unanswered returns the 1-based indices with no selection.
func (q *Quiz) Unanswered() []int {
	var out []int
	for i, a := range q.answers {
		if a.Selected == nil {
			out = append(out, i+1)
		}
	}
	return out
}

// Finalize scores the round. It fails with *IncompleteAnswersError, leaving
// the quiz in progress, when any question is unanswered. Finalizing an
// already finalized quiz returns the same results.
func (q *Quiz) Finalize() (*Results, error) {
	switch q.phase {
	case PhaseEmpty:
		return nil, ErrNotLoaded
	case PhaseFinalized:
		return q.results, nil
	}

	if missing := q.Unanswered(); len(missing) > 0 {
		return nil, &IncompleteAnswersError{Unanswered: missing}
	}

	q.results = score(q.questions, q.answers)
	q.phase = PhaseFinalized
	return q.results, nil
}

// Results returns the scored results, or nil before finalization.
func (q *Quiz) Results() *Results {
	return q.results
}
