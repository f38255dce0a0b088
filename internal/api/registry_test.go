package api

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/profile"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	p, err := profile.New("QA", []string{"Testing"}, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	ids := make(chan string, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := practice.NewSession(p)
			reg.Add(s)
			ids <- s.ID
		}()
	}
	wg.Wait()
	close(ids)

	assert.Equal(t, 50, reg.Len())
	for id := range ids {
		var seen string
		ok := reg.With(id, func(s *practice.Session) { seen = s.ID })
		assert.True(t, ok)
		assert.Equal(t, id, seen)
	}

	assert.False(t, reg.With("missing", func(*practice.Session) { t.Fatal("called for missing session") }))
}
