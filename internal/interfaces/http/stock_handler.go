package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
)

// StockHandler reposición manual e historial de movimientos.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Restock godoc
// @Summary      Reponer stock
// @Description  Suma qty al stock y registra un movimiento "in" en una transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "productId, qty, unitCost, updateCost"
// @Success      201   {object}  dto.RestockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/restock [post]
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Restock(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "Filtrar por producto"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(50)
// @Success      200        {object}  dto.PageResponse[dto.StockMovementResponse]
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.UserContext(), dto.MovementListQuery{ProductID: c.Query("productId"), PageQuery: pageQuery(c)})
	if err != nil {
		return err
	}
	return c.JSON(out)
}
