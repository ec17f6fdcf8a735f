// Package embedding converts text into fixed-length vectors for similarity
// search. It defines a provider-agnostic Embedder interface with a closed set
// of provider variants selected by configuration at startup, plus a
// deterministic mock for testing.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Common errors for embedding operations
var (
	ErrEmptyTexts      = errors.New("no texts provided for embedding")
	ErrMissingAPIKey   = errors.New("embedding API key not set")
	ErrEmbeddingFailed = errors.New("embedding generation failed")
	ErrUnknownProvider = errors.New("unknown embedding provider")
)

// Supported provider names. Selection happens through Config, never by
// inspecting values at runtime.
const (
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Provider returns the provider name (e.g., "openai").
	Provider() string

	// Model returns the embedding model identifier.
	Model() string

	// Dimension returns the embedding vector dimension.
	Dimension() int
}

// Config selects and configures an embedding provider.
type Config struct {
	// Provider is one of the Provider* constants.
	Provider string

	// Model overrides the provider's default embedding model.
	Model string

	// Dimension overrides the provider's default vector dimension.
	Dimension int

	// APIKey overrides the provider's environment credential.
	APIKey string
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

// New creates the Embedder for the configured provider.
func New(cfg Config) (Embedder, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(APIKeyEnv(cfg.Provider))
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAIEmbedder(cfg)
	case ProviderGemini:
		return newGeminiEmbedder(cfg)
	case ProviderOpenRouter:
		return newOpenRouterEmbedder(cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
