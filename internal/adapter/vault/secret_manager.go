package vault

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"
)

type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GeminiAPIKey reads the key from secret/data/gemini on every call, so
// rotating the secret in Vault takes effect immediately.
func (sm *SecretManager) GeminiAPIKey(ctx context.Context) (string, error) {
	secret, err := sm.client.Logical().ReadWithContext(ctx, "secret/data/gemini")
	if err != nil {
		return "", err
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("vault: secret/data/gemini not found")
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("vault: unexpected secret format")
	}
	key, ok := data["api_key"].(string)
	if !ok || key == "" {
		return "", fmt.Errorf("vault: api_key missing")
	}

	return key, nil
}
