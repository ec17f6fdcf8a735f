package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenAIModel     = "text-embedding-3-small"
	defaultOpenAIDimension = 1536

	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// OpenAIEmbedder implements the Embedder interface using OpenAI's API.
// It also backs the OpenRouter variant, which exposes the same API surface
// under a different base URL.
type OpenAIEmbedder struct {
	client    openai.Client
	provider  string
	model     string
	dimension int
}

func newOpenAIEmbedder(cfg Config) (*OpenAIEmbedder, error) {
	return newOpenAICompatible(cfg, ProviderOpenAI, "")
}

func newOpenRouterEmbedder(cfg Config) (*OpenAIEmbedder, error) {
	return newOpenAICompatible(cfg, ProviderOpenRouter, openRouterBaseURL)
}

func newOpenAICompatible(cfg Config, provider, baseURL string) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, APIKeyEnv(provider))
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = defaultOpenAIDimension
	}

	return &OpenAIEmbedder{
		client:    openai.NewClient(opts...),
		provider:  provider,
		model:     model,
		dimension: dimension,
	}, nil
}

// Provider returns the provider name.
func (e *OpenAIEmbedder) Provider() string {
	return e.provider
}

// Model returns the embedding model identifier.
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

// Dimension returns the embedding vector dimension.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed generates embeddings for the provided texts in a single API call.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyTexts
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model:          e.model,
		Dimensions:     openai.Int(int64(e.dimension)),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", ErrEmbeddingFailed, len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		vector := make([]float32, len(data.Embedding))
		for j, val := range data.Embedding {
			vector[j] = float32(val)
		}
		vectors[int(data.Index)] = vector
	}

	return vectors, nil
}
