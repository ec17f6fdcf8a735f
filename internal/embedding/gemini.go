package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel     = "text-embedding-004"
	defaultGeminiDimension = 768
)

// GeminiEmbedder implements the Embedder interface using the Gemini API.
type GeminiEmbedder struct {
	apiKey    string
	model     string
	dimension int
}

func newGeminiEmbedder(cfg Config) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, APIKeyEnv(ProviderGemini))
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = defaultGeminiDimension
	}

	return &GeminiEmbedder{
		apiKey:    cfg.APIKey,
		model:     model,
		dimension: dimension,
	}, nil
}

// Provider returns the provider name.
func (e *GeminiEmbedder) Provider() string {
	return ProviderGemini
}

// Model returns the embedding model identifier.
func (e *GeminiEmbedder) Model() string {
	return e.model
}

// Dimension returns the embedding vector dimension.
func (e *GeminiEmbedder) Dimension() int {
	return e.dimension
}

// Embed generates embeddings for the provided texts in a single API call.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyTexts
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  e.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: text}}}
	}

	dim := int32(e.dimension)
	resp, err := client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", ErrEmbeddingFailed, len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Values
	}

	return vectors, nil
}
