package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/purchasing"
)

// PurchaseInvoiceHandler facturas de proveedor.
type PurchaseInvoiceHandler struct {
	uc *purchasing.PurchaseInvoiceUseCase
}

// NewPurchaseInvoiceHandler construye el handler.
func NewPurchaseInvoiceHandler(uc *purchasing.PurchaseInvoiceUseCase) *PurchaseInvoiceHandler {
	return &PurchaseInvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear factura de compra (borrador)
// @Tags         purchase-invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseInvoiceRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-invoices [post]
func (h *PurchaseInvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas de compra
// @Tags         purchase-invoices
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {object}  dto.PageResponse[dto.PurchaseInvoiceResponse]
// @Router       /api/purchase-invoices [get]
func (h *PurchaseInvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura de compra
// @Tags         purchase-invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.PurchaseInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-invoices/{id} [get]
func (h *PurchaseInvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Post godoc
// @Summary      Contabilizar factura
// @Description  Suma stock, actualiza costos (last | weighted) y registra movimientos en una transacción.
// @Tags         purchase-invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.PostPurchaseInvoiceRequest  false  "costMode"
// @Success      200   {object}  dto.PurchaseInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-invoices/{id}/post [post]
func (h *PurchaseInvoiceHandler) Post(c *fiber.Ctx) error {
	var in dto.PostPurchaseInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return errInvalidBody
		}
	}
	out, err := h.uc.Post(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
