package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiLLM implements the LLM interface using the Gemini API.
type GeminiLLM struct {
	config Config
}

func newGeminiLLM(config Config) (*GeminiLLM, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set %s)", ErrInvalidConfig, APIKeyEnv(ProviderGemini))
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}
	return &GeminiLLM{config: config}, nil
}

// Generate sends the prompt and returns the generated text.
func (g *GeminiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMFailed, err)
	}

	temp := g.config.Temperature
	resp, err := client.Models.GenerateContent(
		ctx,
		g.config.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{Temperature: &temp},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMFailed, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: no response generated", ErrLLMFailed)
	}
	return text, nil
}
