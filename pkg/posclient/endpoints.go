package posclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
)

func pageValues(q dto.PageQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func setIf(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}

func pathID(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}

// Health GET /api/health.
func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	return call[dto.HealthResponse](ctx, c, request{method: http.MethodGet, path: "/api/health"})
}

// Login autentica y guarda la sesión en el store.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var out dto.LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   dto.LoginRequest{Username: username, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	s := &Session{Token: out.Token, User: out.User}
	if err := c.sessions.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ── Productos ──

func (c *Client) ListProducts(ctx context.Context, q dto.ProductListQuery) (*dto.PageResponse[dto.ProductResponse], error) {
	v := pageValues(q.PageQuery)
	setIf(v, "search", q.Search)
	setIf(v, "category", q.Category)
	setBool(v, "active", q.Active)
	return call[dto.PageResponse[dto.ProductResponse]](ctx, c, request{method: http.MethodGet, path: "/api/products", query: v, auth: true})
}

func (c *Client) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	return call[dto.ProductResponse](ctx, c, request{method: http.MethodGet, path: pathID("/api/products", id), auth: true})
}

func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	return call[dto.ProductResponse](ctx, c, request{method: http.MethodPost, path: "/api/products", body: in, auth: true})
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	return call[dto.ProductResponse](ctx, c, request{method: http.MethodPut, path: pathID("/api/products", id), body: in, auth: true})
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: pathID("/api/products", id), auth: true}, nil)
}

func (c *Client) LowStockProducts(ctx context.Context) (*dto.ItemsResponse[dto.ProductResponse], error) {
	return call[dto.ItemsResponse[dto.ProductResponse]](ctx, c, request{method: http.MethodGet, path: "/api/products/low-stock", auth: true})
}

// ── Órdenes ──

func (c *Client) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	return call[dto.OrderResponse](ctx, c, request{method: http.MethodPost, path: "/api/orders/checkout", body: in, auth: true})
}

func (c *Client) ListOrders(ctx context.Context, q dto.OrderListQuery) (*dto.PageResponse[dto.OrderResponse], error) {
	v := pageValues(q.PageQuery)
	setIf(v, "status", q.Status)
	setIf(v, "from", q.From)
	setIf(v, "to", q.To)
	return call[dto.PageResponse[dto.OrderResponse]](ctx, c, request{method: http.MethodGet, path: "/api/orders", query: v, auth: true})
}

func (c *Client) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return call[dto.OrderResponse](ctx, c, request{method: http.MethodGet, path: pathID("/api/orders", id), auth: true})
}

func (c *Client) VoidOrder(ctx context.Context, id, reason string) (*dto.OrderResponse, error) {
	return call[dto.OrderResponse](ctx, c, request{
		method: http.MethodPost,
		path:   pathID("/api/orders", id) + "/void",
		body:   dto.VoidOrderRequest{Reason: reason},
		auth:   true,
	})
}

func (c *Client) SalesSummary(ctx context.Context, q dto.SalesSummaryQuery) (*dto.SalesSummaryResponse, error) {
	v := url.Values{}
	setIf(v, "from", q.From)
	setIf(v, "to", q.To)
	return call[dto.SalesSummaryResponse](ctx, c, request{method: http.MethodGet, path: "/api/orders/summary", query: v, auth: true})
}

// Receipt descarga el PDF del recibo.
func (c *Client) Receipt(ctx context.Context, id string) ([]byte, error) {
	raw, _, err := c.send(ctx, request{method: http.MethodGet, path: pathID("/api/orders", id) + "/receipt.pdf", auth: true})
	return raw, err
}

// ── Usuarios ──

func (c *Client) ListUsers(ctx context.Context, q dto.UserListQuery) (*dto.PageResponse[dto.UserResponse], error) {
	v := pageValues(q.PageQuery)
	setIf(v, "search", q.Search)
	setIf(v, "role", q.Role)
	setBool(v, "active", q.Active)
	return call[dto.PageResponse[dto.UserResponse]](ctx, c, request{method: http.MethodGet, path: "/api/users", query: v, auth: true})
}

func (c *Client) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	return call[dto.UserResponse](ctx, c, request{method: http.MethodPost, path: "/api/users", body: in, auth: true})
}

func (c *Client) UpdateUser(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return call[dto.UserResponse](ctx, c, request{method: http.MethodPut, path: pathID("/api/users", id), body: in, auth: true})
}

func (c *Client) ResetPassword(ctx context.Context, id, password string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   pathID("/api/users", id) + "/reset-password",
		body:   dto.ResetPasswordRequest{Password: password},
		auth:   true,
	}, nil)
}

// ── Stock ──

func (c *Client) Restock(ctx context.Context, in dto.RestockRequest) (*dto.RestockResponse, error) {
	return call[dto.RestockResponse](ctx, c, request{method: http.MethodPost, path: "/api/stock/restock", body: in, auth: true})
}

func (c *Client) Movements(ctx context.Context, q dto.MovementListQuery) (*dto.PageResponse[dto.StockMovementResponse], error) {
	v := pageValues(q.PageQuery)
	setIf(v, "productId", q.ProductID)
	return call[dto.PageResponse[dto.StockMovementResponse]](ctx, c, request{method: http.MethodGet, path: "/api/stock/movements", query: v, auth: true})
}

// ── Proveedores ──

func (c *Client) ListSuppliers(ctx context.Context, q dto.SupplierListQuery) (*dto.ItemsResponse[dto.SupplierResponse], error) {
	v := url.Values{}
	setIf(v, "search", q.Search)
	setBool(v, "active", q.Active)
	return call[dto.ItemsResponse[dto.SupplierResponse]](ctx, c, request{method: http.MethodGet, path: "/api/suppliers", query: v, auth: true})
}

func (c *Client) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	return call[dto.SupplierResponse](ctx, c, request{method: http.MethodPost, path: "/api/suppliers", body: in, auth: true})
}

func (c *Client) UpdateSupplier(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	return call[dto.SupplierResponse](ctx, c, request{method: http.MethodPut, path: pathID("/api/suppliers", id), body: in, auth: true})
}

func (c *Client) DeleteSupplier(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: pathID("/api/suppliers", id), auth: true}, nil)
}

// ── Facturas de compra ──

func (c *Client) ListPurchaseInvoices(ctx context.Context, q dto.PageQuery) (*dto.PageResponse[dto.PurchaseInvoiceResponse], error) {
	return call[dto.PageResponse[dto.PurchaseInvoiceResponse]](ctx, c, request{method: http.MethodGet, path: "/api/purchase-invoices", query: pageValues(q), auth: true})
}

func (c *Client) CreatePurchaseInvoice(ctx context.Context, in dto.CreatePurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	return call[dto.PurchaseInvoiceResponse](ctx, c, request{method: http.MethodPost, path: "/api/purchase-invoices", body: in, auth: true})
}

func (c *Client) GetPurchaseInvoice(ctx context.Context, id string) (*dto.PurchaseInvoiceResponse, error) {
	return call[dto.PurchaseInvoiceResponse](ctx, c, request{method: http.MethodGet, path: pathID("/api/purchase-invoices", id), auth: true})
}

// PostPurchaseInvoice contabiliza la factura; costMode "" = last.
func (c *Client) PostPurchaseInvoice(ctx context.Context, id, costMode string) (*dto.PurchaseInvoiceResponse, error) {
	return call[dto.PurchaseInvoiceResponse](ctx, c, request{
		method: http.MethodPost,
		path:   pathID("/api/purchase-invoices", id) + "/post",
		body:   dto.PostPurchaseInvoiceRequest{CostMode: costMode},
		auth:   true,
	})
}
