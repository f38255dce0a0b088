package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizprep/internal/screen"
	"github.com/abhisek/quizprep/internal/store"
	"github.com/abhisek/quizprep/internal/ui/layout"
	"github.com/abhisek/quizprep/internal/ui/theme"
)

// RoundLister reads recorded rounds, newest first.
type RoundLister interface {
	QueryRoundEvents(ctx context.Context, opts store.QueryOpts) ([]store.RoundEventRecord, error)
}

type historyLoadedMsg struct {
	Rounds []store.RoundEventRecord
	Err    error
}

// HistoryScreen lists past rounds. Enter expands a round's summary lines.
type HistoryScreen struct {
	rounds   RoundLister
	records  []store.RoundEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(rounds RoundLister) *HistoryScreen {
	return &HistoryScreen{
		rounds:   rounds,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	rounds := s.rounds
	return func() tea.Msg {
		recs, err := rounds.QueryRoundEvents(context.Background(), store.QueryOpts{Limit: 50})
		return historyLoadedMsg{Rounds: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Rounds
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No rounds yet. Finish a quiz first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		total := rec.Correct + rec.Wrong
		var accuracy float64
		if total > 0 {
			accuracy = float64(rec.Correct) / float64(total) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s (%dy)  %d/%d correct  %.0f%%",
			prefix, rec.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			rec.Role, rec.ExperienceYears, rec.Correct, total, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				dim.Render("    Skills: "+strings.Join(rec.Skills, ", "))))
			b.WriteString("\n")
			for _, l := range strings.Split(rec.Summary, "\n") {
				if l == "" {
					continue
				}
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    "+l)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
