package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tradingagent/api/internal/model"
	"github.com/tradingagent/api/internal/service"
	"github.com/tradingagent/api/pkg/response"
)

type AnalysisHandler struct {
	service   *service.AnalysisService
	validator *validator.Validate
}

func NewAnalysisHandler(svc *service.AnalysisService, v *validator.Validate) *AnalysisHandler {
	return &AnalysisHandler{
		service:   svc,
		validator: v,
	}
}

// Start handles POST /api/start
func (h *AnalysisHandler) Start(c *fiber.Ctx) error {
	var req model.AnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	req.Normalize()
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	if err := h.service.Start(&req); err != nil {
		if errors.Is(err, service.ErrAlreadyRunning) {
			return response.Conflict(c, "Analysis already running. Stop it first.")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.Accepted(c, model.AnalysisResponse{
		Status:    "started",
		Ticker:    req.Ticker,
		Timestamp: model.Timestamp(time.Now()),
	})
}

// Stop handles POST /api/stop
func (h *AnalysisHandler) Stop(c *fiber.Ctx) error {
	if err := h.service.Stop(); err != nil {
		if errors.Is(err, service.ErrNotRunning) {
			return response.Conflict(c, "No analysis is currently running")
		}
		return response.ServiceError(c, err.Error())
	}

	return response.OK(c, model.AnalysisResponse{
		Status:    "stopped",
		Timestamp: model.Timestamp(time.Now()),
	})
}

func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
