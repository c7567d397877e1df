package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tradingagent/api/internal/model"
	"github.com/tradingagent/api/internal/service"
	ws "github.com/tradingagent/api/internal/websocket"
	"github.com/tradingagent/api/pkg/response"
)

type HealthHandler struct {
	service *service.AnalysisService
	hub     *ws.Hub
}

func NewHealthHandler(svc *service.AnalysisService, hub *ws.Hub) *HealthHandler {
	return &HealthHandler{
		service: svc,
		hub:     hub,
	}
}

// Root handles GET /
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{
		"status":  "ok",
		"service": "TradingAgent WebSocket API",
		"version": "1.0.0",
	})
}

// Health handles GET /api/health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return response.OK(c, model.HealthResponse{
		Status:            "healthy",
		State:             h.service.State(),
		TradingMode:       h.service.Mode(),
		ActiveConnections: h.hub.ClientCount(),
	})
}
