package ports

import "context"

// TextGenerator produces a completion for a single text prompt. No
// conversation history, no system instructions.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SecretSource resolves secrets at call time. Implementations must not
// memoize values, so a rotated key takes effect without a restart.
type SecretSource interface {
	GeminiAPIKey(ctx context.Context) (string, error)
}
