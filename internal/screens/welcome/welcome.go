// Package welcome shows the splash screen before the profile form.
package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizprep/internal/router"
	"github.com/abhisek/quizprep/internal/screen"
	"github.com/abhisek/quizprep/internal/ui/theme"
)

const mascotArt = `╭───────────╮
│  A  B  C  │
│     D ?   │
╰───────────╯`

const tagline = "Sharpen your interview skills!"

// WelcomeScreen shows the banner and waits for a key.
type WelcomeScreen struct {
	next         screen.Factory
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by the screen produced by
// next on the first keypress.
func New(next screen.Factory) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok && !w.transitioned {
		w.transitioned = true
		next := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt),
		"",
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.TrimRight(content, "\n"))
}
