package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/swaggo/swag"

	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/purchasing"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/domain/authz"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	JWTSecret   string

	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	UserUC     *usecase.UserUseCase
	SupplierUC *usecase.SupplierUseCase
	StockUC    *inventory.StockUseCase
	CheckoutUC *sales.CheckoutUseCase
	OrderUC    *sales.OrderUseCase
	ReceiptUC  *sales.ReceiptUseCase
	InvoiceUC  *purchasing.PurchaseInvoiceUseCase

	// LoginLimiter nil = login sin límite.
	LoginLimiter *LoginLimiter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{OK: true, Service: deps.ServiceName})
	})
	api.Get("/openapi.json", openAPI)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	loginChain := []fiber.Handler{}
	if deps.LoginLimiter != nil {
		loginChain = append(loginChain, deps.LoginLimiter.Handler())
	}
	loginChain = append(loginChain, authHandler.Login)
	api.Post("/auth/login", loginChain...)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.JWTSecret)
	can := func(resource, action string) fiber.Handler { return Authorize(resource, action) }

	// Products: low-stock antes de /:id
	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Get("/", can(authz.ResourceProducts, authz.ActionList), productHandler.List)
	products.Get("/low-stock", can(authz.ResourceStock, authz.ActionList), productHandler.LowStock)
	products.Get("/:id", can(authz.ResourceProducts, authz.ActionRead), productHandler.GetByID)
	products.Post("/", can(authz.ResourceProducts, authz.ActionCreate), productHandler.Create)
	products.Put("/:id", can(authz.ResourceProducts, authz.ActionUpdate), productHandler.Update)
	products.Delete("/:id", can(authz.ResourceProducts, authz.ActionDelete), productHandler.Delete)

	// Orders: summary antes de /:id
	orders := api.Group("/orders", requireAuth)
	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.OrderUC, deps.ReceiptUC)
	orders.Post("/checkout", can(authz.ResourceOrders, authz.ActionCreate), orderHandler.Checkout)
	orders.Get("/", can(authz.ResourceOrders, authz.ActionList), orderHandler.List)
	orders.Get("/summary", can(authz.ResourceSalesSummary, authz.ActionRead), orderHandler.Summary)
	orders.Get("/:id", can(authz.ResourceOrders, authz.ActionRead), orderHandler.GetByID)
	orders.Get("/:id/receipt.pdf", can(authz.ResourceOrders, authz.ActionRead), orderHandler.Receipt)
	orders.Post("/:id/void", can(authz.ResourceOrders, authz.ActionVoid), orderHandler.Void)

	// Users (admin)
	users := api.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", can(authz.ResourceUsers, authz.ActionList), userHandler.List)
	users.Post("/", can(authz.ResourceUsers, authz.ActionCreate), userHandler.Create)
	users.Put("/:id", can(authz.ResourceUsers, authz.ActionUpdate), userHandler.Update)
	users.Post("/:id/reset-password", can(authz.ResourceUsers, authz.ActionUpdate), userHandler.ResetPassword)

	// Stock
	stock := api.Group("/stock", requireAuth)
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/restock", can(authz.ResourceStock, authz.ActionCreate), stockHandler.Restock)
	stock.Get("/movements", can(authz.ResourceStock, authz.ActionList), stockHandler.Movements)

	// Suppliers
	suppliers := api.Group("/suppliers", requireAuth)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", can(authz.ResourceSuppliers, authz.ActionList), supplierHandler.List)
	suppliers.Post("/", can(authz.ResourceSuppliers, authz.ActionCreate), supplierHandler.Create)
	suppliers.Put("/:id", can(authz.ResourceSuppliers, authz.ActionUpdate), supplierHandler.Update)
	suppliers.Delete("/:id", can(authz.ResourceSuppliers, authz.ActionDelete), supplierHandler.Delete)

	// Purchase invoices
	invoices := api.Group("/purchase-invoices", requireAuth)
	invoiceHandler := NewPurchaseInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", can(authz.ResourcePurchaseInvoices, authz.ActionList), invoiceHandler.List)
	invoices.Post("/", can(authz.ResourcePurchaseInvoices, authz.ActionCreate), invoiceHandler.Create)
	invoices.Get("/:id", can(authz.ResourcePurchaseInvoices, authz.ActionRead), invoiceHandler.GetByID)
	invoices.Post("/:id/post", can(authz.ResourcePurchaseInvoices, authz.ActionPost), invoiceHandler.Post)
}

// openAPI sirve la especificación registrada en swag (paquete docs); 404 si el binario no la incluye.
func openAPI(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "API docs not available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
