package questiongen

import (
	"context"

	"github.com/abhisek/quizprep/internal/profile"
)

// Generator produces multiple-choice questions for a candidate profile.
type Generator interface {
	// Generate asks for count questions and returns the parsed result.
	// A result with no questions is not an error; callers decide how to
	// surface it.
	Generate(ctx context.Context, p profile.Profile, count int) (*ParseResult, error)
}
