package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
)

// StockAlertHandler alertas de stock bajo.
type StockAlertHandler struct {
	uc *usecase.StockAlertUseCase
}

// NewStockAlertHandler construye el handler.
func NewStockAlertHandler(uc *usecase.StockAlertUseCase) *StockAlertHandler {
	return &StockAlertHandler{uc: uc}
}

// ListActive godoc
// @Summary      Listar alertas sin resolver
// @Tags         stock-alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.StockAlertResponse]
// @Router       /api/stock-alerts [get]
func (h *StockAlertHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// Resolve godoc
// @Summary      Resolver alerta
// @Tags         stock-alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la alerta"
// @Success      200  {object}  dto.StockAlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-alerts/{id}/resolve [post]
func (h *StockAlertHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.uc.Resolve(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
