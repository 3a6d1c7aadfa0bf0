package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

// MovementHandler registra y lista movimientos de inventario.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar entrada o salida de mercancía
// @Description  INBOUND suma (crea el inventario si no existe); OUTBOUND resta y falla si no alcanza.
// @Tags         inventory-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         inventory-movements
// @Security     Bearer
// @Produce      json
// @Param        productId    query     string  false  "Filtrar por producto"
// @Param        warehouseId  query     string  false  "Filtrar por bodega"
// @Success      200          {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/inventory-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), repository.MovementFilter{
		ProductID:   c.Query("productId"),
		WarehouseID: c.Query("warehouseId"),
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}
