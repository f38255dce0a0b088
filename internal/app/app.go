package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/quiz"
	"github.com/abhisek/quizprep/internal/router"
	"github.com/abhisek/quizprep/internal/screen"
	"github.com/abhisek/quizprep/internal/screens/history"
	"github.com/abhisek/quizprep/internal/screens/profile"
	quizscreen "github.com/abhisek/quizprep/internal/screens/quiz"
	"github.com/abhisek/quizprep/internal/screens/results"
	"github.com/abhisek/quizprep/internal/screens/welcome"
	"github.com/abhisek/quizprep/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	// Service runs generation, scoring and feedback.
	Service *practice.Service

	// ModelID is shown in the header when the active screen has no status.
	ModelID string

	// SkipWelcome starts directly on the profile screen.
	SkipWelcome bool

	// Rounds backs the history screen. Nil hides it.
	Rounds history.RoundLister
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	modelID string
	width   int
	height  int
}

// screens wires the screen factories together.
type screens struct {
	svc    *practice.Service
	rounds history.RoundLister
}

func (s screens) profile(prev *practice.Session) screen.Screen {
	return profile.New(s.svc, s.quiz, prev)
}

func (s screens) quiz(sess *practice.Session) screen.Screen {
	return quizscreen.New(s.svc, sess, s.results)
}

func (s screens) results(sess *practice.Session, r *quiz.Results) screen.Screen {
	var newHistory screen.Factory
	if s.rounds != nil {
		newHistory = s.history
	}
	return results.New(s.svc, sess, r, s.profile, newHistory)
}

func (s screens) history() screen.Screen {
	return history.New(s.rounds)
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	sc := screens{svc: opts.Service, rounds: opts.Rounds}

	var first screen.Screen = sc.profile(nil)
	if !opts.SkipWelcome {
		first = welcome.New(func() screen.Screen { return sc.profile(nil) })
	}

	return AppModel{
		router:  router.New(first),
		modelID: opts.ModelID,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := m.modelID
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "any key", Description: "Continue"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
