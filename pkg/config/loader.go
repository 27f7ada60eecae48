package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("gemini.model", "GEMINI_MODEL", "APP_GEMINI_MODEL")
	viper.BindEnv("secrets.source", "SECRETS_SOURCE", "APP_SECRETS_SOURCE")
	viper.BindEnv("secrets.vault.address", "VAULT_ADDR", "APP_VAULT_ADDR")
	viper.BindEnv("secrets.vault.token", "VAULT_TOKEN", "APP_VAULT_TOKEN")
	viper.BindEnv("telemetry.jaeger_endpoint", "JAEGER_ENDPOINT")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	viper.SetDefault("http.port", 8080)
	viper.SetDefault("http.shutdown_timeout", "30s")
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("gemini.circuit_breaker.enabled", true)
	viper.SetDefault("secrets.source", "env")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: env vars and defaults only.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
