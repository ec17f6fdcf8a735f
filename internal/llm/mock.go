package llm

import "context"

// MockLLM is a deterministic LLM implementation for testing.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	Response string

	// Responses, if non-empty, is returned one element per call. After the
	// last element the mock falls back to Response.
	Responses []string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastPrompt stores the most recent prompt passed to Generate.
	LastPrompt string

	// Prompts stores every prompt passed to Generate, in order.
	Prompts []string

	calls int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// NewMockLLMSequence creates a mock LLM that returns the given responses in
// order, one per call.
func NewMockLLMSequence(responses ...string) *MockLLM {
	return &MockLLM{Responses: responses}
}

// Generate records the prompt and returns the configured response.
func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	m.Prompts = append(m.Prompts, prompt)

	if m.Error != nil {
		return "", m.Error
	}

	call := m.calls
	m.calls++
	if call < len(m.Responses) {
		return m.Responses[call], nil
	}
	return m.Response, nil
}
