package skill

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seu-repo/alexa-gemini-skill/internal/domain"
	"github.com/seu-repo/alexa-gemini-skill/internal/mocks"
)

func TestQueryHandler_MissingQuestion_NoUpstreamCall(t *testing.T) {
	generator := &mocks.MockTextGenerator{}
	handler := NewQueryHandler(generator, newTestLogger())

	cases := map[string]*domain.RequestEnvelope{
		"no slots":    intentEnvelope(domain.IntentGeminiQuery, nil),
		"empty value": intentEnvelope(domain.IntentGeminiQuery, map[string]string{domain.SlotQuestion: ""}),
		"whitespace":  intentEnvelope(domain.IntentGeminiQuery, map[string]string{domain.SlotQuestion: "   "}),
	}

	for name, env := range cases {
		payload, err := handler.Handle(context.Background(), env)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		if payload.Text != speechNoQuestion {
			t.Errorf("%s: expected reprompt, got %q", name, payload.Text)
		}
		if payload.EndSession {
			t.Errorf("%s: expected session to stay open", name)
		}
	}

	if generator.Calls != 0 {
		t.Errorf("expected zero generator calls, got %d", generator.Calls)
	}
}

func TestQueryHandler_Success(t *testing.T) {
	const answer = "299,792,458 m/s"

	var gotPrompt string
	generator := &mocks.MockTextGenerator{
		GenerateTextFunc: func(_ context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return answer, nil
		},
	}
	handler := NewQueryHandler(generator, newTestLogger())

	env := intentEnvelope(domain.IntentGeminiQuery, map[string]string{
		domain.SlotQuestion: "What is the speed of light?",
	})

	payload, err := handler.Handle(context.Background(), env)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if payload.Text != answer {
		t.Errorf("expected answer verbatim, got %q", payload.Text)
	}
	if payload.CardTitle != "Gemini" || payload.CardContent != answer {
		t.Errorf("expected Gemini card with answer, got %q/%q", payload.CardTitle, payload.CardContent)
	}
	if !payload.EndSession {
		t.Error("expected session to end after a successful answer")
	}
	if gotPrompt != "What is the speed of light?" {
		t.Errorf("expected slot value as sole prompt, got %q", gotPrompt)
	}
	if generator.Calls != 1 {
		t.Errorf("expected exactly one generator call, got %d", generator.Calls)
	}
}

func TestQueryHandler_UpstreamFailure(t *testing.T) {
	generator := &mocks.MockTextGenerator{
		GenerateTextFunc: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	handler := NewQueryHandler(generator, newTestLogger())

	env := intentEnvelope(domain.IntentGeminiQuery, map[string]string{
		domain.SlotQuestion: "What is the speed of light?",
	})

	payload, err := handler.Handle(context.Background(), env)

	if err != nil {
		t.Fatalf("upstream failure must be recovered locally, got error %v", err)
	}
	if !strings.HasPrefix(payload.Text, "Sorry, I couldn't reach Gemini right now. Error: ") {
		t.Errorf("expected apology prefix, got %q", payload.Text)
	}
	if !strings.Contains(payload.Text, "connection refused") {
		t.Errorf("expected error detail in apology, got %q", payload.Text)
	}
	if !payload.EndSession {
		t.Error("expected session to end after upstream failure")
	}
}
