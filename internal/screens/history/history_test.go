package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizprep/internal/store"
)

type fakeRounds struct {
	recs []store.RoundEventRecord
	err  error
}

func (f fakeRounds) QueryRoundEvents(context.Context, store.QueryOpts) ([]store.RoundEventRecord, error) {
	return f.recs, f.err
}

func load(s *HistoryScreen) {
	s.Update(s.Init()())
}

func sampleRounds() []store.RoundEventRecord {
	return []store.RoundEventRecord{
		{ID: 2, Timestamp: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), RoundEventData: store.RoundEventData{
			Role: "Backend Engineer", Skills: []string{"Go", "SQL"}, ExperienceYears: 4,
			QuestionCount: 2, Correct: 1, Wrong: 1,
			Summary: "Q1: Your Answer = A, Correct = A\nQ2: Your Answer = C, Correct = B",
		}},
		{ID: 1, Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), RoundEventData: store.RoundEventData{
			Role: "Data Analyst", Skills: []string{"Excel"}, QuestionCount: 1, Correct: 1,
		}},
	}
}

func TestView_Loading(t *testing.T) {
	s := New(fakeRounds{})
	if !strings.Contains(s.View(100, 30), "Loading history") {
		t.Error("expected loading text before Init result")
	}
}

func TestView_Empty(t *testing.T) {
	s := New(fakeRounds{})
	load(s)
	if !strings.Contains(s.View(100, 30), "No rounds yet") {
		t.Error("expected empty state")
	}
}

func TestView_Error(t *testing.T) {
	s := New(fakeRounds{err: errors.New("db locked")})
	load(s)
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected error text")
	}
}

func TestView_ListsAndExpands(t *testing.T) {
	s := New(fakeRounds{recs: sampleRounds()})
	load(s)

	view := s.View(120, 30)
	for _, want := range []string{"Backend Engineer", "1/2 correct", "Data Analyst", "1/1 correct"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Q2: Your Answer") {
		t.Error("summary should be hidden until expanded")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 30)
	if !strings.Contains(view, "Q2: Your Answer = C, Correct = B") {
		t.Error("expanded round should show its summary")
	}
	if !strings.Contains(view, "Skills: Go, SQL") {
		t.Error("expanded round should show skills")
	}
}

func TestNavigationBounds(t *testing.T) {
	s := New(fakeRounds{recs: sampleRounds()})
	load(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}
