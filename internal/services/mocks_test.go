package services_test

import (
	"context"
	"errors"
)

// mockGemini implements services.GeminiService with scripted behavior.
type mockGemini struct {
	generate func(prompt string) (string, error)
	embed    func(text string) ([]float32, error)
	calls    int
}

func (m *mockGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.embed != nil {
		return m.embed(text)
	}
	return nil, errors.New("embedding not configured")
}

func (m *mockGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	m.calls++
	if m.generate != nil {
		return m.generate(prompt)
	}
	return "", errors.New("generate not configured")
}

func (m *mockGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return m.GenerateText(ctx, prompt, temperature)
}
