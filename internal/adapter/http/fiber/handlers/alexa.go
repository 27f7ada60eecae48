package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/alexa-gemini-skill/internal/domain"
	"github.com/seu-repo/alexa-gemini-skill/internal/service/skill"
)

// AlexaHandler is the single inbound endpoint of the skill. Business-logic
// failures never become non-200 responses: the dispatcher always yields a
// valid speech envelope and failures are spoken to the user.
type AlexaHandler struct {
	registry *skill.Registry
	log      *zap.Logger
}

func NewAlexaHandler(registry *skill.Registry, log *zap.Logger) *AlexaHandler {
	return &AlexaHandler{
		registry: registry,
		log:      log,
	}
}

func (h *AlexaHandler) HandleRequest(c *fiber.Ctx) error {
	var env domain.RequestEnvelope
	if err := c.BodyParser(&env); err != nil {
		// Malformed envelope is a transport-level concern, not a skill one.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request envelope"})
	}

	h.log.Info("Skill request",
		zap.String("request_type", env.Request.Type),
		zap.String("intent", env.IntentName()),
		zap.String("session_id", env.Session.SessionID),
	)

	payload := h.registry.Dispatch(c.Context(), &env)
	return c.JSON(skill.BuildResponse(payload))
}
