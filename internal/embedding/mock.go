package embedding

import "context"

// MockEmbedder is a deterministic Embedder implementation for testing.
// Vectors are served from a fixed table keyed by input text.
type MockEmbedder struct {
	// Vectors maps input text to the vector returned for it. Inputs not in
	// the table get a zero vector of the configured dimension.
	Vectors map[string][]float32

	// Error, if set, is returned by Embed instead of vectors.
	Error error

	// ProviderName and ModelName default to "mock" and "mock-embed".
	ProviderName string
	ModelName    string
	Dim          int

	// LastTexts stores the most recent inputs passed to Embed.
	LastTexts []string
}

// NewMockEmbedder creates a mock embedder serving the given fixed vectors.
func NewMockEmbedder(vectors map[string][]float32) *MockEmbedder {
	dim := 0
	for _, v := range vectors {
		dim = len(v)
		break
	}
	return &MockEmbedder{Vectors: vectors, Dim: dim}
}

func (m *MockEmbedder) Provider() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

func (m *MockEmbedder) Model() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "mock-embed"
}

func (m *MockEmbedder) Dimension() int {
	return m.Dim
}

// Embed returns the configured vector for each text, or a zero vector for
// texts not in the table.
func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.LastTexts = texts

	if m.Error != nil {
		return nil, m.Error
	}
	if len(texts) == 0 {
		return nil, ErrEmptyTexts
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.Vectors[text]; ok {
			vectors[i] = v
			continue
		}
		vectors[i] = make([]float32, m.Dim)
	}
	return vectors, nil
}
