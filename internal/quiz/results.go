package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizprep/internal/questiongen"
)

// absentLabel is shown in summaries for questions without an answer marker.
const absentLabel = "(none)"

// Results is the scored outcome of a finalized round.
type Results struct {
	Correct int
	Wrong   int
	Total   int
	Items   []ResultItem
}

// ResultItem is the scored outcome of one question.
type ResultItem struct {
	Index        int
	QuestionText string
	Selected     questiongen.Option
	CorrectLabel string // empty when the response omitted it
	// CorrectOption is the option the answer points to, when it exists.
	CorrectOption *questiongen.Option
	IsCorrect     bool
}

// score judges every question. A selection is correct iff its label equals
// the answer letter; a question without a recognizable answer is wrong.
func score(questions []questiongen.Question, answers []Answer) *Results {
	r := &Results{Total: len(questions), Items: make([]ResultItem, len(questions))}
	for i, qu := range questions {
		sel := *answers[i].Selected
		letter := qu.AnswerLetter()

		item := ResultItem{
			Index:        qu.Index,
			QuestionText: qu.Text,
			Selected:     sel,
			CorrectLabel: qu.CorrectLabel,
			IsCorrect:    letter != "" && sel.Label == letter,
		}
		if opt, ok := qu.Option(letter); ok {
			item.CorrectOption = &opt
		}
		if item.IsCorrect {
			r.Correct++
		} else {
			r.Wrong++
		}
		r.Items[i] = item
	}
	return r
}

// Line returns the summary line for the item, e.g.
// "Q1: Your Answer = B, Correct = B".
func (it ResultItem) Line() string {
	correct := it.CorrectLabel
	if correct == "" {
		correct = absentLabel
	}
	return fmt.Sprintf("Q%d: Your Answer = %s, Correct = %s", it.Index, it.Selected.Label, correct)
}

// Lines returns one summary line per question, in order.
func (r *Results) Lines() []string {
	lines := make([]string, len(r.Items))
	for i, it := range r.Items {
		lines[i] = it.Line()
	}
	return lines
}

// Summary joins the summary lines; this is the text sent for feedback.
func (r *Results) Summary() string {
	return strings.Join(r.Lines(), "\n")
}

// TotalsLine renders "Correct: X, Wrong: Y, Total: Z".
func (r *Results) TotalsLine() string {
	return fmt.Sprintf("Correct: %d, Wrong: %d, Total: %d", r.Correct, r.Wrong, r.Total)
}
