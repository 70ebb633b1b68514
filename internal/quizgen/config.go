package quizgen

// Config controls the behavior of the generation pipeline.
type Config struct {
	// MaxTokens is the token budget for the completion response.
	MaxTokens int

	// Temperature controls completion randomness (0.0-1.0).
	Temperature float64

	// MinContentLength is the minimum number of characters of source
	// content accepted by the prompt builder.
	MinContentLength int

	// StructuredOutput attaches a JSON schema to the completion request so
	// providers that support native structured output can use it. The
	// extractor and normalizer still run regardless: the schema is a hint
	// to the provider, never a guarantee.
	StructuredOutput bool
}

// DefaultConfig returns the recommended pipeline settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        3000,
		Temperature:      0.7,
		MinContentLength: 100,
	}
}
