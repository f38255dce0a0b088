package questiongen

import (
	"context"
	"fmt"

	"github.com/abhisek/quizprep/internal/llm"
	"github.com/abhisek/quizprep/internal/profile"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate builds the question prompt, blocks on the completion call and
// parses the response.
func (g *LLMGenerator) Generate(ctx context.Context, p profile.Profile, count int) (*ParseResult, error) {
	prompt, err := BuildQuestionPrompt(p, count)
	if err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	text, err := llm.Complete(ctx, g.provider, prompt, g.config.MaxTokens, g.config.Temperature)
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	result := Parse(text, count)
	return &result, nil
}
