package components

import (
	"github.com/abhisek/quizprep/internal/ui/theme"
)

// Button renders an action label. Screens handle the key that presses it.
type Button struct {
	Label   string
	Focused bool
	Enabled bool
}

// NewButton creates a new button.
func NewButton(label string, focused, enabled bool) Button {
	return Button{
		Label:   label,
		Focused: focused,
		Enabled: enabled,
	}
}

// View renders the button.
func (b Button) View() string {
	label := "  ▸ " + b.Label + " "
	switch {
	case !b.Enabled:
		return theme.ButtonDisabled.Render(label)
	case b.Focused:
		return theme.ButtonActive.Render(label)
	default:
		return theme.ButtonInactive.Render(label)
	}
}
