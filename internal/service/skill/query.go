package skill

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/alexa-gemini-skill/internal/domain"
	"github.com/seu-repo/alexa-gemini-skill/internal/ports"
)

// QueryHandler forwards the question slot of GeminiQueryIntent to the text
// generator. It is the only handler with external side effects.
type QueryHandler struct {
	generator ports.TextGenerator
	log       *zap.Logger
}

func NewQueryHandler(generator ports.TextGenerator, log *zap.Logger) *QueryHandler {
	return &QueryHandler{
		generator: generator,
		log:       log,
	}
}

func (h *QueryHandler) CanHandle(env *domain.RequestEnvelope) bool {
	return env.IntentName() == domain.IntentGeminiQuery
}

func (h *QueryHandler) Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.SpeechPayload, error) {
	question := strings.TrimSpace(env.SlotValue(domain.SlotQuestion))
	if question == "" {
		// No upstream call; reprompt and keep the session open.
		return &domain.SpeechPayload{
			Text:       speechNoQuestion,
			EndSession: false,
		}, nil
	}

	answer, err := h.generator.GenerateText(ctx, question)
	if err != nil {
		h.log.Error("Gemini call failed",
			zap.String("session_id", env.Session.SessionID),
			zap.Error(err),
		)
		speech := fmt.Sprintf("Sorry, I couldn't reach Gemini right now. Error: %v", err)
		return &domain.SpeechPayload{
			Text:        speech,
			CardTitle:   cardTitle,
			CardContent: speech,
			EndSession:  true,
		}, nil
	}

	// The generated text is spoken verbatim, unmodified and untruncated.
	return &domain.SpeechPayload{
		Text:        answer,
		CardTitle:   cardTitle,
		CardContent: answer,
		EndSession:  true,
	}, nil
}
