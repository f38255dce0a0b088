package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizprep/internal/llm"
	"github.com/abhisek/quizprep/internal/profile"
)

func testProfile(t *testing.T) profile.Profile {
	t.Helper()
	p, err := profile.New("Backend Engineer", []string{"Go", "SQL"}, 4)
	require.NoError(t, err)
	return p
}

const summary = "Q1: Your Answer = B, Correct = B\nQ2: Your Answer = A, Correct = C"

func TestBuildFeedbackPrompt(t *testing.T) {
	prompt := BuildFeedbackPrompt(testProfile(t), summary)

	assert.Contains(t, prompt, "Role: Backend Engineer")
	assert.Contains(t, prompt, "Skills: Go, SQL")
	assert.Contains(t, prompt, "Experience: 4 years")
	assert.Contains(t, prompt, summary)
	for _, want := range []string{"evaluation", "Strengths", "Weaknesses", "Suggestions for improvement"} {
		assert.Contains(t, prompt, want)
	}
}

func TestRequestFeedback_Verbatim(t *testing.T) {
	text := "  Good job.\n\nStrengths: Go  "
	mock := llm.NewMockProvider(llm.MockResponse{Text: text})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.RequestFeedback(context.Background(), testProfile(t), summary)
	require.NoError(t, err)
	assert.Equal(t, text, got)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, 800, mock.Calls[0].MaxTokens)
	assert.InDelta(t, 0.6, mock.Calls[0].Temperature, 1e-9)
	assert.Contains(t, mock.LastPrompt(), summary)
}

func TestRequestFeedback_ServiceError(t *testing.T) {
	svc := NewService(llm.NewUnavailableProvider(llm.ErrNoCredential), DefaultConfig())

	_, err := svc.RequestFeedback(context.Background(), testProfile(t), summary)

	var svcErr *llm.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "unavailable", svcErr.Kind)
}

func TestRequestFeedback_Purpose(t *testing.T) {
	var seen string
	p := purposeProvider{fn: func(ctx context.Context) { seen = llm.PurposeFrom(ctx) }}
	svc := NewService(p, DefaultConfig())

	_, err := svc.RequestFeedback(context.Background(), testProfile(t), summary)
	require.NoError(t, err)
	assert.Equal(t, "feedback", seen)
}

type purposeProvider struct {
	fn func(context.Context)
}

func (p purposeProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(ctx)
	return &llm.Response{Text: "ok"}, nil
}

func (p purposeProvider) ModelID() string { return "purpose" }
