package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_ReturnsText(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "Q1. What is Go?\nA) A language\nAnswer: A"})

	text, err := Complete(context.Background(), mock, "generate", 1200, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Q1. What is Go?\nA) A language\nAnswer: A", text)

	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	assert.Equal(t, 1200, call.MaxTokens)
	assert.InDelta(t, 0.7, call.Temperature, 1e-9)
	require.Len(t, call.Messages, 1)
	assert.Equal(t, RoleUser, call.Messages[0].Role)
	assert.Equal(t, "generate", call.Messages[0].Content)
}

func TestComplete_RejectsBadParameters(t *testing.T) {
	mock := NewMockProvider()

	_, err := Complete(context.Background(), mock, "p", 100, 1.5)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = Complete(context.Background(), mock, "p", 100, -0.1)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = Complete(context.Background(), mock, "p", 0, 0.5)
	require.ErrorIs(t, err, ErrInvalidParams)

	var svcErr *ServiceError
	assert.False(t, errors.As(err, &svcErr), "parameter errors are not service errors")

	assert.Equal(t, 0, mock.CallCount(), "provider must not be called")
}

func TestComplete_WrapsFailuresAsServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, "rate_limit"},
		{"auth", &ErrAuthentication{Err: errors.New("401")}, "auth"},
		{"invalid", &ErrInvalidResponse{Err: errors.New("empty")}, "invalid_response"},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("down")}, "unavailable"},
		{"timeout", context.DeadlineExceeded, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err})
			_, err := Complete(context.Background(), mock, "p", 100, 0.5)

			var svc *ServiceError
			require.ErrorAs(t, err, &svc)
			assert.Equal(t, tt.kind, svc.Kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestComplete_UnavailableProviderFails(t *testing.T) {
	p := NewUnavailableProvider(ErrNoCredential)

	_, err := Complete(context.Background(), p, "p", 100, 0.5)

	var svc *ServiceError
	require.ErrorAs(t, err, &svc)
	assert.Equal(t, "unavailable", svc.Kind)
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Contains(t, err.Error(), "completion service error")
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)

	_, err := Complete(context.Background(), p, "p", 100, 0.5)

	var svc *ServiceError
	require.ErrorAs(t, err, &svc)
	assert.Equal(t, "timeout", svc.Kind)
	assert.Equal(t, "slow", p.ModelID())
}

func TestWithTimeout_ZeroReturnsInner(t *testing.T) {
	inner := NewMockProvider()
	assert.Same(t, inner, WithTimeout(inner, 0))
}
