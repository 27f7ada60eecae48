package mocks

import "context"

// MockTextGenerator is a call-counting stub for ports.TextGenerator.
type MockTextGenerator struct {
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)
	Calls            int
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "", nil
}

// MockSecretSource is a stub for ports.SecretSource.
type MockSecretSource struct {
	GeminiAPIKeyFunc func(ctx context.Context) (string, error)
}

func (m *MockSecretSource) GeminiAPIKey(ctx context.Context) (string, error) {
	if m.GeminiAPIKeyFunc != nil {
		return m.GeminiAPIKeyFunc(ctx)
	}
	return "test-key", nil
}
