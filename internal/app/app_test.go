package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizprep/internal/feedback"
	"github.com/abhisek/quizprep/internal/llm"
	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/store"
)

func testOptions(skipWelcome bool) Options {
	mock := llm.NewMockProvider()
	return Options{
		Service: practice.NewService(
			questiongen.New(mock, questiongen.DefaultConfig()),
			feedback.NewService(mock, feedback.DefaultConfig()),
			nil,
		),
		ModelID:     "mock",
		SkipWelcome: skipWelcome,
	}
}

func TestNewAppModel_StartsOnWelcome(t *testing.T) {
	m := newAppModel(testOptions(false))
	if got := m.router.Active().Title(); got != "" {
		t.Errorf("expected welcome screen with empty title, got %q", got)
	}
}

func TestNewAppModel_SkipWelcome(t *testing.T) {
	m := newAppModel(testOptions(true))
	if got := m.router.Active().Title(); got != "Candidate Profile" {
		t.Errorf("Title = %q, want Candidate Profile", got)
	}
}

func TestView_HeaderShowsModel(t *testing.T) {
	var model tea.Model = newAppModel(testOptions(true))
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	content := model.(AppModel).render()
	if !strings.Contains(content, "quizprep") {
		t.Error("header should show the app name")
	}
	if !strings.Contains(content, "mock") {
		t.Error("header should show the model ID")
	}
}

func TestView_TooSmall(t *testing.T) {
	var model tea.Model = newAppModel(testOptions(true))
	model, _ = model.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	content := model.(AppModel).render()
	if !strings.Contains(content, "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(true))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestScreens_History(t *testing.T) {
	sc := screens{svc: testOptions(true).Service, rounds: emptyRounds{}}
	if got := sc.history().Title(); got != "History" {
		t.Errorf("Title = %q, want History", got)
	}
}

type emptyRounds struct{}

func (emptyRounds) QueryRoundEvents(context.Context, store.QueryOpts) ([]store.RoundEventRecord, error) {
	return nil, nil
}
