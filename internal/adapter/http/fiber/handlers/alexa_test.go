package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/alexa-gemini-skill/internal/domain"
	"github.com/seu-repo/alexa-gemini-skill/internal/mocks"
	"github.com/seu-repo/alexa-gemini-skill/internal/service/skill"
)

func newTestApp(generator *mocks.MockTextGenerator) *fiber.App {
	logger, _ := zap.NewDevelopment()

	registry := skill.NewRegistry(logger)
	registry.Register(skill.LaunchHandler{})
	registry.Register(skill.NewQueryHandler(generator, logger))
	registry.Register(skill.HelpHandler{})
	registry.Register(skill.CancelStopHandler{})
	registry.Register(skill.SessionEndedHandler{})
	registry.Register(skill.CatchAllHandler{})

	app := fiber.New()
	app.Post("/alexa", NewAlexaHandler(registry, logger).HandleRequest)
	return app
}

func postEnvelope(t *testing.T, app *fiber.App, envelope interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/alexa", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) *domain.ResponseEnvelope {
	t.Helper()

	var envelope domain.ResponseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return &envelope
}

func TestHandleRequest_Launch(t *testing.T) {
	app := newTestApp(&mocks.MockTextGenerator{})

	resp := postEnvelope(t, app, domain.RequestEnvelope{
		Version: "1.0",
		Request: domain.Request{Type: domain.RequestTypeLaunch},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	envelope := decodeResponse(t, resp)
	if envelope.Response.OutputSpeech == nil {
		t.Fatal("expected output speech")
	}
	if envelope.Response.OutputSpeech.Text == "" {
		t.Error("expected welcome speech")
	}
	if envelope.Response.ShouldEndSession {
		t.Error("expected session to stay open after launch")
	}
}

func TestHandleRequest_Query(t *testing.T) {
	generator := &mocks.MockTextGenerator{
		GenerateTextFunc: func(_ context.Context, _ string) (string, error) {
			return "42", nil
		},
	}
	app := newTestApp(generator)

	resp := postEnvelope(t, app, domain.RequestEnvelope{
		Version: "1.0",
		Request: domain.Request{
			Type: domain.RequestTypeIntent,
			Intent: &domain.Intent{
				Name: domain.IntentGeminiQuery,
				Slots: map[string]domain.Slot{
					domain.SlotQuestion: {Name: domain.SlotQuestion, Value: "What is the answer?"},
				},
			},
		},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	envelope := decodeResponse(t, resp)
	if envelope.Response.OutputSpeech == nil || envelope.Response.OutputSpeech.Text != "42" {
		t.Errorf("expected generated answer, got %+v", envelope.Response.OutputSpeech)
	}
	if !envelope.Response.ShouldEndSession {
		t.Error("expected session to end")
	}
	if generator.Calls != 1 {
		t.Errorf("expected one generator call, got %d", generator.Calls)
	}
}

func TestHandleRequest_UpstreamFailure_Still200(t *testing.T) {
	generator := &mocks.MockTextGenerator{
		GenerateTextFunc: func(_ context.Context, _ string) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	app := newTestApp(generator)

	resp := postEnvelope(t, app, domain.RequestEnvelope{
		Version: "1.0",
		Request: domain.Request{
			Type: domain.RequestTypeIntent,
			Intent: &domain.Intent{
				Name: domain.IntentGeminiQuery,
				Slots: map[string]domain.Slot{
					domain.SlotQuestion: {Value: "anything"},
				},
			},
		},
	})

	// Failures are spoken, never surfaced as non-200 responses.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	envelope := decodeResponse(t, resp)
	if envelope.Response.OutputSpeech == nil {
		t.Fatal("expected apology speech")
	}
	if !envelope.Response.ShouldEndSession {
		t.Error("expected session to end")
	}
}

func TestHandleRequest_MalformedBody(t *testing.T) {
	app := newTestApp(&mocks.MockTextGenerator{})

	req, _ := http.NewRequest(http.MethodPost, "/alexa", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed envelope, got %d", resp.StatusCode)
	}
}
