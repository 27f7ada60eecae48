package health

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestReady_AllCheckersHealthy(t *testing.T) {
	service := NewService("v1.0.0", newTestLogger())
	service.RegisterChecker("gemini_api_key", CheckFunc("gemini_api_key", func(_ context.Context) error {
		return nil
	}))

	resp := service.Ready(context.Background())

	if !resp.Ready {
		t.Error("expected ready")
	}
	if resp.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	if len(resp.Checks) != 1 {
		t.Errorf("expected one check result, got %d", len(resp.Checks))
	}
}

func TestReady_FailingChecker(t *testing.T) {
	service := NewService("v1.0.0", newTestLogger())
	service.RegisterChecker("gemini_api_key", CheckFunc("gemini_api_key", func(_ context.Context) error {
		return errors.New("GEMINI_API_KEY is not set")
	}))

	resp := service.Ready(context.Background())

	if resp.Ready {
		t.Error("expected not ready")
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", resp.Status)
	}
	if resp.Checks["gemini_api_key"].Message == "" {
		t.Error("expected failure message in check result")
	}
}

func TestHealth_Liveness(t *testing.T) {
	service := NewService("v1.0.0", newTestLogger())

	resp := service.Health(context.Background())

	if resp.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("expected version, got %q", resp.Version)
	}
}
