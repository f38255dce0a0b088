// Package feedback requests a natural-language evaluation of a finished
// practice round.
package feedback

import (
	"context"
	"fmt"

	"github.com/abhisek/quizprep/internal/llm"
	"github.com/abhisek/quizprep/internal/profile"
)

// Requestor produces feedback for a finished round.
type Requestor interface {
	RequestFeedback(ctx context.Context, p profile.Profile, resultsSummary string) (string, error)
}

// Service requests feedback from the LLM provider. Calls block until the
// completion returns.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a feedback service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// RequestFeedback returns the model's text verbatim. Failures are
// *llm.ServiceError wrapped with context.
func (s *Service) RequestFeedback(ctx context.Context, p profile.Profile, resultsSummary string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)

	prompt := BuildFeedbackPrompt(p, resultsSummary)
	text, err := llm.Complete(ctx, s.provider, prompt, s.cfg.MaxTokens, s.cfg.Temperature)
	if err != nil {
		return "", fmt.Errorf("feedback: %w", err)
	}
	return text, nil
}
