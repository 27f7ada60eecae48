package secrets

import (
	"context"
	"errors"
	"os"
)

// EnvSource reads secrets from the process environment on every call,
// nothing is cached.
type EnvSource struct{}

func (EnvSource) GeminiAPIKey(_ context.Context) (string, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return "", errors.New("GEMINI_API_KEY is not set")
	}
	return key, nil
}
