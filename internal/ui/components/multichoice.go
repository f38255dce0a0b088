package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/ui/theme"
)

// MultiChoice is a radio-style option selector. Nothing is selected until
// the user picks an option.
type MultiChoice struct {
	Question string
	Options  []questiongen.Option
	Cursor   int
	Selected string // label of the chosen option, "" when none
}

// NewMultiChoice creates a selector for q with an optional prior selection.
func NewMultiChoice(q questiongen.Question, selected string) MultiChoice {
	m := MultiChoice{
		Question: q.Text,
		Options:  q.Options,
		Selected: selected,
	}
	for i, o := range q.Options {
		if o.Label == selected {
			m.Cursor = i
		}
	}
	return m
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and records selections. Letter keys a-d select
// the option with that label; enter or space select the option under the
// cursor.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space", " ":
		m.Selected = m.Options[m.Cursor].Label
	case "a", "b", "c", "d", "A", "B", "C", "D":
		label := strings.ToUpper(key)
		for i, o := range m.Options {
			if o.Label == label {
				m.Cursor = i
				m.Selected = label
			}
		}
	}

	return m, nil
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	if len(m.Options) == 0 {
		b.WriteString(theme.Hint.Render("  (no options were provided for this question)"))
		return b.String()
	}

	for i, o := range m.Options {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		radio := "( )"
		if o.Label == m.Selected {
			radio = "(•)"
		}
		line := cursor + radio + " " + o.String()

		switch {
		case o.Label == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		case i == m.Cursor:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HasSelection reports whether an option was chosen.
func (m MultiChoice) HasSelection() bool {
	return m.Selected != ""
}
