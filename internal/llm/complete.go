package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidParams is returned by Complete, before any call is made, when
// the temperature or token limit is out of range.
var ErrInvalidParams = errors.New("invalid completion parameters")

// Complete sends prompt as a single user message and returns the full
// response text. A failed call is returned as a *ServiceError; invalid
// parameters wrap ErrInvalidParams.
func Complete(ctx context.Context, p Provider, prompt string, maxTokens int, temperature float64) (string, error) {
	if temperature < 0 || temperature > 1 {
		return "", fmt.Errorf("%w: temperature %.2f out of range [0, 1]", ErrInvalidParams, temperature)
	}
	if maxTokens <= 0 {
		return "", fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidParams, maxTokens)
	}

	resp, err := p.Generate(ctx, Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", asServiceError(err)
	}
	return resp.Text, nil
}
