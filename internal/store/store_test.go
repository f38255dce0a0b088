package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizprep.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("/tmp/a.db")
	if !strings.HasPrefix(got, "/tmp/a.db?_pragma=journal_mode(WAL)&") {
		t.Errorf("unexpected DSN %q", got)
	}
	got = withPragmas("file::memory:?cache=shared")
	if !strings.HasPrefix(got, "file::memory:?cache=shared&_pragma=") {
		t.Errorf("unexpected DSN %q", got)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}

	if err := sc.reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	seq, err := sc.Next(ctx)
	if err != nil {
		t.Fatalf("next after reset: %v", err)
	}
	if seq != 1 {
		t.Errorf("seq after reset = %d, want 1", seq)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{llmRequestEventsTable, roundEventsTable, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func TestTablesFromSchema(t *testing.T) {
	tables := Tables()
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	llm := tables[0]
	if llm.Name != llmRequestEventsTable {
		t.Fatalf("table name = %q", llm.Name)
	}
	// id + sequence + timestamp + 10 fields.
	if len(llm.Columns) != 13 {
		t.Errorf("columns = %d, want 13", len(llm.Columns))
	}
	want := []string{"id", "sequence", "timestamp", "provider", "model", "purpose"}
	for i, name := range want {
		if llm.Columns[i].Name != name {
			t.Errorf("column %d = %q, want %q", i, llm.Columns[i].Name, name)
		}
	}
	if !llm.Columns[1].Unique {
		t.Error("sequence column should be unique")
	}

	round := tables[1]
	// id + sequence + timestamp + 8 fields.
	if len(round.Columns) != 11 {
		t.Errorf("round columns = %d, want 11", len(round.Columns))
	}
}

func TestCreateBuilderAppliesSchema(t *testing.T) {
	t.Run("function default", func(t *testing.T) {
		query, args, err := roundEvents.create().
			set("sequence", int64(1)).
			set("session_id", "s1").
			set("role", "QA").
			query()
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if !strings.Contains(query, "`timestamp`") && !strings.Contains(query, `"timestamp"`) {
			t.Errorf("expected timestamp column in %q", query)
		}
		var ts time.Time
		for _, a := range args {
			if v, ok := a.(time.Time); ok {
				ts = v
			}
		}
		if ts.IsZero() || ts.Location() != time.UTC {
			t.Errorf("timestamp default = %v, want current UTC time", ts)
		}
	})

	t.Run("not empty validator", func(t *testing.T) {
		_, _, err := roundEvents.create().
			set("sequence", int64(1)).
			set("session_id", "").
			set("role", "QA").
			query()
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Name != "session_id" {
			t.Fatalf("expected session_id validation error, got %v", err)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		_, _, err := llmRequestEvents.create().
			set("sequence", int64(1)).
			set("provider", "mock").
			query()
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Name != "model" {
			t.Fatalf("expected model validation error, got %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, err := roundEvents.create().set("score", 3).query()
		if err == nil || !strings.Contains(err.Error(), "unknown field") {
			t.Fatalf("expected unknown field error, got %v", err)
		}
	})
}

func TestAppendRoundEventRejectsEmptySessionWithoutSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	var verr *ValidationError
	if err := repo.AppendRoundEvent(ctx, RoundEventData{Role: "QA"}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := repo.AppendRoundEvent(ctx, RoundEventData{SessionID: "s1", Role: "QA"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	rounds, err := repo.QueryRoundEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rounds) != 1 || rounds[0].Sequence != 1 {
		t.Errorf("rejected insert should not consume a sequence number, got %+v", rounds)
	}
}

func TestLLMEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "question-gen", InputTokens: 100, OutputTokens: 400, LatencyMs: 1200, Success: true, RequestBody: "[user]\nGenerate", ResponseBody: "Q1. ..."},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "feedback", InputTokens: 80, OutputTokens: 200, LatencyMs: 800, Success: true},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "question-gen", LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	// Newest first.
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("expected descending sequence, got %d then %d", got[0].Sequence, got[1].Sequence)
	}
	if got[0].ErrorMessage != "rate limited" || got[0].Success {
		t.Errorf("unexpected newest event: %+v", got[0])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 event, got %d", len(limited))
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: got[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("expected 1 event after sequence %d, got %d", got[1].Sequence, len(after))
	}

	one, err := repo.GetLLMEvent(ctx, got[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.RequestBody != "[user]\nGenerate" || one.ResponseBody != "Q1. ..." {
		t.Errorf("unexpected event: %+v", one)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "feedback", InputTokens: 5, OutputTokens: 6, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	// Ordered by purpose name.
	if byPurpose[1].Purpose != "question-gen" || byPurpose[1].Calls != 2 ||
		byPurpose[1].InputTokens != 40 || byPurpose[1].OutputTokens != 60 ||
		byPurpose[1].AvgLatencyMs != 200 {
		t.Errorf("unexpected question-gen usage: %+v", byPurpose[1])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("expected 2 models, got %d", len(byModel))
	}
	if byModel[1].Model != "gpt-4o-mini" || byModel[1].Calls != 2 {
		t.Errorf("unexpected model usage: %+v", byModel[1])
	}
}

func TestRoundEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	totals, err := repo.RoundTotals(ctx)
	if err != nil {
		t.Fatalf("totals (empty): %v", err)
	}
	if totals.Rounds != 0 || totals.Accuracy() != 0 {
		t.Errorf("expected empty totals, got %+v", totals)
	}

	if err := repo.AppendRoundEvent(ctx, RoundEventData{}); err == nil {
		t.Error("expected error for missing session ID")
	}

	rounds := []RoundEventData{
		{SessionID: "s1", Role: "Backend Engineer", Skills: []string{"Go", "SQL"}, ExperienceYears: 3, QuestionCount: 5, Correct: 4, Wrong: 1, Summary: "Q1: ..."},
		{SessionID: "s1", Role: "Backend Engineer", Skills: []string{"Go", "SQL"}, ExperienceYears: 3, QuestionCount: 5, Correct: 2, Wrong: 3},
	}
	for _, r := range rounds {
		if err := repo.AppendRoundEvent(ctx, r); err != nil {
			t.Fatalf("append round: %v", err)
		}
	}

	got, err := repo.QueryRoundEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query rounds: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(got))
	}
	if got[1].Summary != "Q1: ..." {
		t.Errorf("summary = %q", got[1].Summary)
	}
	if len(got[1].Skills) != 2 || got[1].Skills[0] != "Go" || got[1].Skills[1] != "SQL" {
		t.Errorf("skills = %v", got[1].Skills)
	}

	totals, err = repo.RoundTotals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Rounds != 2 || totals.Correct != 6 || totals.Wrong != 4 {
		t.Errorf("unexpected totals: %+v", totals)
	}
	if totals.Accuracy() != 0.6 {
		t.Errorf("accuracy = %v, want 0.6", totals.Accuracy())
	}

	from, err := repo.QueryRoundEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(from) != 0 {
		t.Errorf("expected no rounds in the future, got %d", len(from))
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "feedback", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendRoundEvent(ctx, RoundEventData{SessionID: "s", Role: "QA"}); err != nil {
		t.Fatalf("append round: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	llmEvents, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	rounds, _ := repo.QueryRoundEvents(ctx, QueryOpts{})
	if len(llmEvents) != 0 || len(rounds) != 0 {
		t.Fatalf("expected empty store, got %d llm events and %d rounds", len(llmEvents), len(rounds))
	}

	if err := repo.AppendRoundEvent(ctx, RoundEventData{SessionID: "s2", Role: "QA"}); err != nil {
		t.Fatalf("append after reset: %v", err)
	}
	rounds, _ = repo.QueryRoundEvents(ctx, QueryOpts{})
	if len(rounds) != 1 || rounds[0].Sequence != 1 {
		t.Errorf("expected sequence to restart at 1, got %+v", rounds)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("QUIZPREP_DB", filepath.Join(dir, "custom", "q.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "custom", "q.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("QUIZPREP_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "quizprep", "quizprep.db") {
		t.Errorf("path = %q", p)
	}
}
