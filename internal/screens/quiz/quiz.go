// Package quiz implements the screen where the candidate answers a loaded
// question set.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizprep/internal/practice"
	quizstate "github.com/abhisek/quizprep/internal/quiz"
	"github.com/abhisek/quizprep/internal/router"
	"github.com/abhisek/quizprep/internal/screen"
	"github.com/abhisek/quizprep/internal/ui/components"
	"github.com/abhisek/quizprep/internal/ui/layout"
	"github.com/abhisek/quizprep/internal/ui/theme"
)

// ResultsFactory builds the screen shown after a successful finish.
type ResultsFactory func(sess *practice.Session, results *quizstate.Results) screen.Screen

// QuizScreen shows one question per page followed by a review page with
// the Finish action.
type QuizScreen struct {
	svc        *practice.Service
	sess       *practice.Session
	newResults ResultsFactory

	choices []components.MultiChoice
	page    int // len(choices) is the review page
	status  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for the questions loaded in sess.
func New(svc *practice.Service, sess *practice.Session, newResults ResultsFactory) *QuizScreen {
	qs := sess.Quiz.Questions()
	choices := make([]components.MultiChoice, len(qs))
	for i, q := range qs {
		var selected string
		if sel, ok := sess.Quiz.Selection(q.Index); ok {
			selected = sel.Label
		}
		choices[i] = components.NewMultiChoice(q, selected)
	}

	s := &QuizScreen{svc: svc, sess: sess, newResults: newResults, choices: choices}
	if n := len(sess.Skipped()); n > 0 {
		s.status = fmt.Sprintf("%d malformed question(s) were skipped.", n)
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Practice Round"
}

// Status returns the answer progress shown in the header.
func (s *QuizScreen) Status() string {
	return fmt.Sprintf("%d/%d answered", s.answered(), len(s.choices))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.onReview() {
		return []layout.KeyHint{
			{Key: "←", Description: "Back"},
			{Key: "Enter", Description: "Finish"},
			{Key: "Esc", Description: "Profile"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter/A-D", Description: "Select"},
		{Key: "←→", Description: "Question"},
		{Key: "F", Description: "Finish"},
	}
}

func (s *QuizScreen) onReview() bool {
	return s.page >= len(s.choices)
}

func (s *QuizScreen) answered() int {
	return len(s.choices) - len(s.sess.Quiz.Unanswered())
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if s.page > 0 {
			s.page--
		}
		return s, nil
	case "right", "l", "tab":
		if s.page < len(s.choices) {
			s.page++
		}
		return s, nil
	case "f", "F":
		return s.finish()
	case "enter":
		if s.onReview() {
			return s.finish()
		}
	}

	if s.onReview() {
		return s, nil
	}

	idx := s.page
	before := s.choices[idx].Selected
	var cmd tea.Cmd
	s.choices[idx], cmd = s.choices[idx].Update(msg)

	if label := s.choices[idx].Selected; label != before {
		if err := s.sess.Quiz.Select(idx+1, label); err != nil {
			s.choices[idx].Selected = before
			s.status = err.Error()
		} else {
			s.status = ""
		}
	}
	return s, cmd
}

func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	results, err := s.svc.Finish(context.Background(), s.sess)

	var incomplete *quizstate.IncompleteAnswersError
	if errors.As(err, &incomplete) {
		s.status = fmt.Sprintf("Please answer all questions before finishing. Unanswered: %s",
			joinInts(incomplete.Unanswered))
		s.page = incomplete.Unanswered[0] - 1
		return s, nil
	}
	if err != nil {
		s.status = err.Error()
		return s, nil
	}

	next := s.newResults(s.sess, results)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	total := len(s.choices)

	var b strings.Builder

	pageLabel := "Review"
	if !s.onReview() {
		pageLabel = fmt.Sprintf("Question %d of %d", s.page+1, total)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(pageLabel))
	b.WriteString("\n")

	b.WriteString(components.NewProgressBar("Answered", s.answered(), total, cw-6).View())
	b.WriteString("\n\n")

	if s.onReview() {
		b.WriteString(s.renderReview(cw))
	} else {
		b.WriteString(lipgloss.NewStyle().Width(cw - 6).Render(s.choices[s.page].View()))
	}

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Width(cw - 6).Render(s.status))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *QuizScreen) renderReview(cw int) string {
	var b strings.Builder
	for i, c := range s.choices {
		mark := theme.Unanswered.Render("○ unanswered")
		if c.HasSelection() {
			mark = theme.Answered.Render("● " + c.Selected)
		}
		text := truncate(c.Question, cw-30)
		b.WriteString(fmt.Sprintf("Q%-3d %-*s %s\n", i+1, cw-28, text, mark))
	}
	b.WriteString("\n")
	b.WriteString(components.NewButton("Finish", true, s.answered() == len(s.choices)).View())
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
