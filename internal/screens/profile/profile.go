// Package profile implements the screen where the candidate enters the
// role, skills and experience a round is tailored to.
package profile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizprep/internal/llm"
	"github.com/abhisek/quizprep/internal/practice"
	prof "github.com/abhisek/quizprep/internal/profile"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/router"
	"github.com/abhisek/quizprep/internal/screen"
	"github.com/abhisek/quizprep/internal/ui/components"
	"github.com/abhisek/quizprep/internal/ui/layout"
	"github.com/abhisek/quizprep/internal/ui/theme"
)

// Form fields in focus order. fieldGenerate is the submit button.
const (
	fieldRole = iota
	fieldSkills
	fieldExperience
	fieldCount
	fieldGenerate
)

var fieldLabels = []string{"Role", "Skills (comma-separated)", "Experience (years)", "Questions"}

// QuizFactory builds the screen shown once questions are loaded.
type QuizFactory func(sess *practice.Session) screen.Screen

// ProfileScreen collects the candidate profile and starts generation.
type ProfileScreen struct {
	svc     *practice.Service
	newQuiz QuizFactory

	inputs  []components.TextInput
	focus   int
	spinner spinner.Model

	// prev is reused when the profile is unchanged.
	prev *practice.Session

	generating bool
	warning    string
	errMsg     string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen. prev, when non-nil, pre-fills the form.
func New(svc *practice.Service, newQuiz QuizFactory, prev *practice.Session) *ProfileScreen {
	inputs := []components.TextInput{
		components.NewTextInput("e.g. Backend Engineer", false, 200),
		components.NewTextInput("e.g. Go, PostgreSQL, Kubernetes", false, 500),
		components.NewTextInput("0", true, 2),
		components.NewTextInput(strconv.Itoa(questiongen.DefaultCount), true, 2),
	}
	if prev != nil {
		inputs[fieldRole].SetValue(prev.Profile.Role)
		inputs[fieldSkills].SetValue(prev.Profile.SkillList())
		inputs[fieldExperience].SetValue(strconv.Itoa(prev.Profile.ExperienceYears))
		if n := prev.Quiz.Len(); n > 0 {
			inputs[fieldCount].SetValue(strconv.Itoa(n))
		}
	}

	return &ProfileScreen{
		svc:     svc,
		newQuiz: newQuiz,
		inputs:  inputs,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		prev:    prev,
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.setFocus(fieldRole)
}

func (s *ProfileScreen) Title() string {
	return "Candidate Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Enter", Description: "Next / Generate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestionsReady(msg)

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.generating {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % (fieldGenerate + 1))
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldGenerate) % (fieldGenerate + 1))
		case "enter":
			if s.focus == fieldGenerate {
				return s, s.submit()
			}
			return s, s.setFocus(s.focus + 1)
		}
	}

	if s.focus < fieldGenerate && !s.generating {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProfileScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	var cmd tea.Cmd
	for i := range s.inputs {
		if i == field {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

// readProfile validates the form. The returned warning is shown to the
// user when non-empty.
func (s *ProfileScreen) readProfile() (prof.Profile, int, string) {
	role := strings.TrimSpace(s.inputs[fieldRole].Value())
	skills := strings.TrimSpace(s.inputs[fieldSkills].Value())
	if role == "" || len(prof.ParseSkills(skills)) == 0 {
		return prof.Profile{}, 0, "Please enter both role and skills."
	}

	exp, ok := s.numericField(fieldExperience, 0, 0, prof.MaxExperienceYears)
	if !ok {
		return prof.Profile{}, 0, fmt.Sprintf("Experience must be between 0 and %d years.", prof.MaxExperienceYears)
	}

	count, ok := s.numericField(fieldCount, questiongen.DefaultCount, questiongen.MinCount, questiongen.MaxCount)
	if !ok {
		return prof.Profile{}, 0, fmt.Sprintf("Questions must be between %d and %d.", questiongen.MinCount, questiongen.MaxCount)
	}

	p, err := prof.Parse(role, skills, exp)
	if err != nil {
		return prof.Profile{}, 0, err.Error()
	}
	return p, count, ""
}

// numericField reads an optional integer input within [lo, hi] and marks
// the input valid or invalid. An empty input yields def.
func (s *ProfileScreen) numericField(field, def, lo, hi int) (int, bool) {
	in := &s.inputs[field]
	if in.Value() == "" {
		return def, true
	}
	n, err := in.NumericValue()
	ok := err == nil && n >= lo && n <= hi
	in.Submit(ok)
	return n, ok
}

func (s *ProfileScreen) submit() tea.Cmd {
	p, count, warning := s.readProfile()
	if warning != "" {
		s.warning = warning
		return nil
	}

	sess := s.prev
	if sess == nil || !sameProfile(sess.Profile, p) {
		sess = practice.NewSession(p)
	}

	s.generating = true
	s.warning = ""
	s.errMsg = ""

	svc := s.svc
	generate := func() tea.Msg {
		res, err := svc.Generate(context.Background(), sess, count)
		return questionsReadyMsg{Session: sess, Result: res, Err: err}
	}
	return tea.Batch(generate, s.spinner.Tick)
}

func (s *ProfileScreen) handleQuestionsReady(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	s.generating = false

	if errors.Is(msg.Err, practice.ErrEmptyParseResult) {
		s.warning = "No questions could be parsed from the response. Try generating again."
		if msg.Result != nil && len(msg.Result.Skipped) > 0 {
			s.warning += fmt.Sprintf(" (%d malformed segment(s) skipped)", len(msg.Result.Skipped))
		}
		return s, nil
	}

	var svcErr *llm.ServiceError
	if errors.As(msg.Err, &svcErr) {
		s.errMsg = svcErr.Error()
		return s, nil
	}
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.prev = msg.Session
	next := s.newQuiz(msg.Session)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 6).Render("Tell us about the role"))
	b.WriteString("\n\n")

	for i, label := range fieldLabels {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.focus {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(components.NewButton("Generate Questions", s.focus == fieldGenerate, !s.generating).View())
	b.WriteString("\n\n")

	switch {
	case s.generating:
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render("Generating Questions..."))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Width(cw - 6).Render("Error: " + s.errMsg))
	case s.warning != "":
		b.WriteString(theme.Warning.Width(cw - 6).Render(s.warning))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func sameProfile(a, b prof.Profile) bool {
	return a.Role == b.Role && a.ExperienceYears == b.ExperienceYears && slices.Equal(a.Skills, b.Skills)
}
