// Package results implements the screen that shows a scored round and the
// model's feedback on it.
package results

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/quiz"
	"github.com/abhisek/quizprep/internal/router"
	"github.com/abhisek/quizprep/internal/screen"
	"github.com/abhisek/quizprep/internal/ui/components"
	"github.com/abhisek/quizprep/internal/ui/layout"
	"github.com/abhisek/quizprep/internal/ui/theme"
)

// ProfileFactory builds the profile screen for another round.
type ProfileFactory func(prev *practice.Session) screen.Screen

// feedbackReadyMsg is sent when the feedback request returns.
type feedbackReadyMsg struct {
	Text string
	Err  error
}

// ResultsScreen displays per-question results, totals and feedback.
type ResultsScreen struct {
	svc        *practice.Service
	sess       *practice.Session
	results    *quiz.Results
	newProfile ProfileFactory
	newHistory screen.Factory

	spinner  spinner.Model
	loading  bool
	feedback string
	errMsg   string

	menu   components.Menu
	offset int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for a finalized session. The history menu
// entry is shown only when newHistory is non-nil.
func New(svc *practice.Service, sess *practice.Session, results *quiz.Results, newProfile ProfileFactory, newHistory screen.Factory) *ResultsScreen {
	s := &ResultsScreen{
		svc:        svc,
		sess:       sess,
		results:    results,
		newProfile: newProfile,
		newHistory: newHistory,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading:    true,
	}
	// Practice again stays disabled until the feedback request returns.
	items := []components.MenuItem{{Label: "Practice again", Key: "p", Action: s.practiceAgain, Disabled: true}}
	if newHistory != nil {
		items = append(items, components.MenuItem{Label: "History", Key: "h", Action: s.showHistory})
	}
	items = append(items, components.MenuItem{Label: "Quit", Key: "q", Action: func() tea.Cmd { return tea.Quit }})
	s.menu = components.NewMenu(items)
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	svc, sess := s.svc, s.sess
	request := func() tea.Msg {
		text, err := svc.Feedback(context.Background(), sess)
		return feedbackReadyMsg{Text: text, Err: err}
	}
	return tea.Batch(request, s.spinner.Tick)
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

// Status returns the score shown in the header.
func (s *ResultsScreen) Status() string {
	return fmt.Sprintf("%d/%d correct", s.results.Correct, s.results.Total)
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Enter", Description: "Select"},
	}
}

func (s *ResultsScreen) practiceAgain() tea.Cmd {
	next := s.newProfile(s.sess)
	return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

func (s *ResultsScreen) showHistory() tea.Cmd {
	next := s.newHistory()
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackReadyMsg:
		s.loading = false
		s.menu.Items[0].Disabled = false
		s.menu.Selected = 0
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.feedback = msg.Text
		}
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "pgdown", "ctrl+d":
			s.offset += 5
			return s, nil
		case "pgup", "ctrl+u":
			s.offset = max(0, s.offset-5)
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

// bodyLines renders the scrollable part of the screen.
func (s *ResultsScreen) bodyLines(width int) []string {
	var b strings.Builder

	for _, it := range s.results.Items {
		b.WriteString(fmt.Sprintf("%s Q%d. %s\n", theme.Mark(it.IsCorrect), it.Index, it.QuestionText))
		b.WriteString(theme.Hint.Render(fmt.Sprintf("    Your answer: %s", it.Selected)))
		b.WriteString("\n")
		if !it.IsCorrect {
			b.WriteString(theme.Hint.Render("    Correct answer: " + correctText(it)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.results.TotalsLine()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("AI Feedback"))
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render("Generating feedback..."))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render("Error: " + s.errMsg))
	default:
		b.WriteString(theme.Body.Render(s.feedback))
	}

	wrapped := lipgloss.NewStyle().Width(width).Render(b.String())
	return strings.Split(wrapped, "\n")
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	menu := s.menu.View()

	bodyHeight := height - lipgloss.Height(menu) - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	lines := s.bodyLines(cw)
	maxOffset := max(0, len(lines)-bodyHeight)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(len(lines), s.offset+bodyHeight)
	body := strings.Join(lines[s.offset:end], "\n")

	content := body + "\n\n" + menu
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// correctText renders the correct answer, with the option text when the
// answer letter matches an option.
func correctText(it quiz.ResultItem) string {
	if it.CorrectOption != nil {
		return it.CorrectOption.String()
	}
	if it.CorrectLabel == "" {
		return "(none)"
	}
	return it.CorrectLabel
}
