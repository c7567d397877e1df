package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tradingagent/api/internal/model"
	"github.com/tradingagent/api/pkg/response"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Config handles GET /api/config. The catalog is static data for the
// frontend; nothing here touches the job slot.
func (h *CatalogHandler) Config(c *fiber.Ctx) error {
	return response.OK(c, model.Catalog())
}
