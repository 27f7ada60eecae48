package health

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) Live(c *fiber.Ctx) error {
	return c.JSON(h.service.Health(c.Context()))
}

func (h *Handler) Ready(c *fiber.Ctx) error {
	resp := h.service.Ready(c.Context())
	if !resp.Ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
