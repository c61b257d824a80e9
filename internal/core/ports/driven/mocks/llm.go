package mocks

import (
	"context"
	"errors"
)

// MockLLMService is a mock implementation of LLMService for testing
type MockLLMService struct {
	model    string
	response string
	failNext bool
	calls    int

	// LastSystemPrompt and LastUserPrompt record the most recent Complete
	// call for prompt assertions
	LastSystemPrompt string
	LastUserPrompt   string
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{
		model:    "mock-llm-model",
		response: "This is a mock answer.",
	}
}

func (m *MockLLMService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if m.failNext {
		m.failNext = false
		return "", errors.New("llm unavailable")
	}

	m.calls++
	m.LastSystemPrompt = systemPrompt
	m.LastUserPrompt = userPrompt
	return m.response, nil
}

func (m *MockLLMService) Model() string {
	return m.model
}

func (m *MockLLMService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockLLMService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockLLMService) SetResponse(response string) {
	m.response = response
}

func (m *MockLLMService) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockLLMService) Calls() int {
	return m.calls
}
