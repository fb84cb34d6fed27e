package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
)

// OrderHandler caja y consulta de ventas.
type OrderHandler struct {
	checkout *sales.CheckoutUseCase
	orders   *sales.OrderUseCase
	receipts *sales.ReceiptUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(checkout *sales.CheckoutUseCase, orders *sales.OrderUseCase, receipts *sales.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, receipts: receipts}
}

// Checkout godoc
// @Summary      Registrar venta
// @Description  Valoriza el carrito, valida el pago y asigna el número POS-YYYYMMDD-NNNN.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito y pago"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.checkout.Checkout(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "paid | void"
// @Param        from    query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        to      query  string  false  "YYYY-MM-DD o RFC3339 (inclusivo)"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {object}  dto.PageResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.orders.List(c.UserContext(), dto.OrderListQuery{
		Status:    c.Query("status"),
		From:      c.Query("from"),
		To:        c.Query("to"),
		PageQuery: pageQuery(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Void godoc
// @Summary      Anular orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.VoidOrderRequest  false  "Motivo"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/void [post]
func (h *OrderHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return errInvalidBody
		}
	}
	out, err := h.orders.Void(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de ventas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        to    query  string  false  "YYYY-MM-DD inclusivo (por defecto hoy)"
// @Success      200   {object}  dto.SalesSummaryResponse
// @Router       /api/orders/summary [get]
func (h *OrderHandler) Summary(c *fiber.Ctx) error {
	out, err := h.orders.Summary(c.UserContext(), dto.SalesSummaryQuery{From: c.Query("from"), To: c.Query("to")})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt.pdf [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.Receipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
