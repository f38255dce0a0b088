package questiongen

const (
	// MinCount and MaxCount bound the number of questions per request.
	MinCount = 1
	MaxCount = 10

	// DefaultCount is the number of questions requested when unspecified.
	DefaultCount = 5
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended question generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1200,
		Temperature: 0.7,
	}
}
