package skill

import (
	"context"

	"github.com/seu-repo/alexa-gemini-skill/internal/domain"
)

const (
	speechWelcome    = "Welcome to Gemini. You can ask me anything. For example, say: ask, what is the speed of light?"
	speechHelp       = "You can ask me any question. For example: ask, what is quantum computing?"
	speechGoodbye    = "Goodbye!"
	speechNoQuestion = "I didn't catch a question. Please try again."
	speechError      = "Sorry, something went wrong. Please try again later."

	cardTitle     = "Gemini"
	cardTitleHelp = "Gemini Help"
)

// LaunchHandler greets the user when the skill is opened without a
// question ("Alexa, open gemini"). The session stays open for a follow-up.
type LaunchHandler struct{}

func (LaunchHandler) CanHandle(env *domain.RequestEnvelope) bool {
	return env.Request.Type == domain.RequestTypeLaunch
}

func (LaunchHandler) Handle(_ context.Context, _ *domain.RequestEnvelope) (*domain.SpeechPayload, error) {
	return &domain.SpeechPayload{
		Text:        speechWelcome,
		CardTitle:   cardTitle,
		CardContent: speechWelcome,
		EndSession:  false,
	}, nil
}

// HelpHandler handles AMAZON.HelpIntent.
type HelpHandler struct{}

func (HelpHandler) CanHandle(env *domain.RequestEnvelope) bool {
	return env.IntentName() == domain.IntentHelp
}

func (HelpHandler) Handle(_ context.Context, _ *domain.RequestEnvelope) (*domain.SpeechPayload, error) {
	return &domain.SpeechPayload{
		Text:        speechHelp,
		CardTitle:   cardTitleHelp,
		CardContent: speechHelp,
		EndSession:  false,
	}, nil
}

// CancelStopHandler handles AMAZON.CancelIntent and AMAZON.StopIntent.
type CancelStopHandler struct{}

func (CancelStopHandler) CanHandle(env *domain.RequestEnvelope) bool {
	name := env.IntentName()
	return name == domain.IntentCancel || name == domain.IntentStop
}

func (CancelStopHandler) Handle(_ context.Context, _ *domain.RequestEnvelope) (*domain.SpeechPayload, error) {
	return &domain.SpeechPayload{
		Text:       speechGoodbye,
		EndSession: true,
	}, nil
}

// SessionEndedHandler handles SessionEndedRequest. Alexa renders no speech
// for this request type, so the payload stays empty.
type SessionEndedHandler struct{}

func (SessionEndedHandler) CanHandle(env *domain.RequestEnvelope) bool {
	return env.Request.Type == domain.RequestTypeSessionEnded
}

func (SessionEndedHandler) Handle(_ context.Context, _ *domain.RequestEnvelope) (*domain.SpeechPayload, error) {
	return &domain.SpeechPayload{EndSession: true}, nil
}

// CatchAllHandler is the handler of last resort. Registered after every
// other handler, it absorbs unrecognized intents and acts as the safety net
// the dispatcher relies on.
type CatchAllHandler struct{}

func (CatchAllHandler) CanHandle(_ *domain.RequestEnvelope) bool {
	return true
}

func (CatchAllHandler) Handle(_ context.Context, _ *domain.RequestEnvelope) (*domain.SpeechPayload, error) {
	return errorPayload(), nil
}
