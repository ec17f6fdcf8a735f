// Package llm provides the generation collaborator used for episode
// extraction and context generation. It defines a provider-agnostic LLM
// interface with a closed set of provider variants selected by configuration,
// and deterministic mocks for testing.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	ErrLLMFailed       = errors.New("LLM request failed")
	ErrInvalidConfig   = errors.New("invalid LLM configuration")
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

// Supported provider names, matching the embedding provider set.
const (
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces text from a prompt using the configured model.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds common configuration options for LLM providers.
type Config struct {
	// Provider is one of the Provider* constants.
	Provider string

	// Model specifies the model identifier (e.g., "gpt-4o").
	Model string

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float32

	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// APIKey overrides the provider's environment credential.
	APIKey string
}

// DefaultConfig returns sensible defaults for structured generation.
func DefaultConfig(provider string) Config {
	cfg := Config{
		Provider:    provider,
		Temperature: 0.3,
		MaxTokens:   2000,
	}
	switch provider {
	case ProviderGemini:
		cfg.Model = "gemini-2.0-flash"
	case ProviderOpenRouter:
		cfg.Model = "openai/gpt-4o"
	default:
		cfg.Model = "gpt-4o"
	}
	return cfg
}

// APIKeyEnv returns the environment variable holding the credential for a
// provider. Unknown providers map to the empty string.
func APIKeyEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	}
	return ""
}

// New creates the LLM for the configured provider.
func New(cfg Config) (LLM, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(APIKeyEnv(cfg.Provider))
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAILLM(cfg, "")
	case ProviderOpenRouter:
		return newOpenAILLM(cfg, openRouterBaseURL)
	case ProviderGemini:
		return newGeminiLLM(cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
