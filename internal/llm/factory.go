package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// NewProvider creates a Provider from configuration.
// The provider is wrapped with event logging (when repo is non-nil) and the
// per-request timeout.
func NewProvider(ctx context.Context, cfg Config, repo EventRecorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → logging → base
	p := base
	if repo != nil {
		p = WithLogging(p, cfg.Provider, repo)
	}
	return WithTimeout(p, cfg.Timeout), nil
}

// NewProviderFromEnv loads .env, resolves configuration from the environment
// and builds the provider.
//
// When no credential is configured it returns an UnavailableProvider together
// with an error wrapping ErrNoCredential, so callers can warn and keep going:
// every completion will then fail with a ServiceError.
func NewProviderFromEnv(ctx context.Context, repo EventRecorder) (Provider, error) {
	if err := LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := ResolveConfig()
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return NewUnavailableProvider(err), err
		}
		return nil, err
	}

	return NewProvider(ctx, cfg, repo)
}
