package skill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/alexa-gemini-skill/internal/domain"
	"github.com/seu-repo/alexa-gemini-skill/internal/observability/telemetry"
)

// Handler processes one category of Alexa request. Implementations are
// stateless and safe to share across concurrent dispatches.
type Handler interface {
	CanHandle(env *domain.RequestEnvelope) bool
	Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.SpeechPayload, error)
}

// Registry owns the ordered handler chain. It is built once at startup and
// must not be mutated afterwards. First registered match wins, so
// skill-specific handlers go in before the generic fallbacks and the
// catch-all goes in last.
type Registry struct {
	handlers []Handler
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{log: log}
}

// Register appends a handler to the chain. Not safe to call after the
// registry is in service.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
}

// Dispatch selects the first handler whose CanHandle accepts the envelope
// and runs it. Handler failures never escape: Alexa can only render a
// well-formed speech envelope, so errors and panics are logged and replaced
// with the generic session-ending apology.
func (r *Registry) Dispatch(ctx context.Context, env *domain.RequestEnvelope) *domain.SpeechPayload {
	start := time.Now()
	payload, status := r.dispatch(ctx, env)
	telemetry.SkillRequestsTotal.WithLabelValues(requestLabel(env), status).Inc()
	telemetry.DispatchLatency.Observe(time.Since(start).Seconds())
	return payload
}

func (r *Registry) dispatch(ctx context.Context, env *domain.RequestEnvelope) (*domain.SpeechPayload, string) {
	for _, h := range r.handlers {
		if !h.CanHandle(env) {
			continue
		}
		payload, err := r.safeHandle(ctx, h, env)
		if err != nil {
			r.log.Error("Skill handler failed",
				zap.String("request_type", env.Request.Type),
				zap.String("intent", env.IntentName()),
				zap.Error(err),
			)
			return errorPayload(), "error"
		}
		return payload, "ok"
	}

	// Every deployment registers a catch-all last, so reaching this point
	// is a wiring bug.
	r.log.Error("No handler matched request",
		zap.String("request_type", env.Request.Type),
		zap.String("intent", env.IntentName()),
	)
	return errorPayload(), "unmatched"
}

func (r *Registry) safeHandle(ctx context.Context, h Handler, env *domain.RequestEnvelope) (payload *domain.SpeechPayload, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()

	payload, err = h.Handle(ctx, env)
	if err == nil && payload == nil {
		err = errors.New("handler returned no payload")
	}
	return payload, err
}

func requestLabel(env *domain.RequestEnvelope) string {
	if name := env.IntentName(); name != "" {
		return name
	}
	return env.Request.Type
}

func errorPayload() *domain.SpeechPayload {
	return &domain.SpeechPayload{
		Text:       speechError,
		EndSession: true,
	}
}
