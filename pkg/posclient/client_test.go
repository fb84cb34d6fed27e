package posclient_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/purchasing"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/cafe-pos-api/internal/interfaces/http"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
	"github.com/jhoicas/cafe-pos-api/pkg/posclient"
)

const secret = "posclient-test-secret"

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// newServer API real sobre memoria servida por httptest vía el adaptador de Fiber.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	loc := time.UTC
	users := usecase.NewUserUseCase(repos.Users)
	_, err := users.EnsureAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	log := logger.Nop()
	app := apphttp.NewApp(apphttp.AppConfig{Name: "posclient-test"}, log)
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "posclient-test",
		JWTSecret:   secret,
		AuthUC:      auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}),
		ProductUC:   usecase.NewProductUseCase(repos.Products),
		UserUC:      users,
		SupplierUC:  usecase.NewSupplierUseCase(repos.Suppliers),
		StockUC:     inventory.NewStockUseCase(store, repos),
		CheckoutUC:  sales.NewCheckoutUseCase(store, sales.WithLocation(loc)),
		OrderUC:     sales.NewOrderUseCase(store, repos.Orders, sales.WithLocation(loc)),
		ReceiptUC:   sales.NewReceiptUseCase(repos.Orders, pdf.NewReceiptGenerator("Café Test", loc)),
		InvoiceUC:   purchasing.NewPurchaseInvoiceUseCase(store, repos.Invoices, purchasing.WithLocation(loc)),
	})

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginPersisteSesion(t *testing.T) {
	srv := newServer(t)
	path := filepath.Join(t.TempDir(), "session.json")
	c := posclient.New(posclient.Config{BaseURL: srv.URL, Sessions: posclient.NewFileStore(path)})
	ctx := context.Background()

	s, err := c.Login(ctx, "ADMIN", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "admin", s.User.Role)

	// un cliente nuevo sobre el mismo archivo reutiliza la sesión
	c2 := posclient.New(posclient.Config{BaseURL: srv.URL, Sessions: posclient.NewFileStore(path)})
	got, err := c2.Session()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.Token, got.Token)

	_, err = c2.ListProducts(ctx, dto.ProductListQuery{})
	require.NoError(t, err)

	require.NoError(t, c2.Logout())
	got, err = c.Session()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_FlujoCompleto(t *testing.T) {
	srv := newServer(t)
	c := posclient.New(posclient.Config{BaseURL: srv.URL})
	ctx := context.Background()
	_, err := c.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	p, err := c.CreateProduct(ctx, dto.CreateProductRequest{Name: "Latte", Category: "coffee", Price: money("8.50"), Cost: money("3.10")})
	require.NoError(t, err)

	_, err = c.Restock(ctx, dto.RestockRequest{ProductID: p.ID, Qty: 10})
	require.NoError(t, err)

	o, err := c.Checkout(ctx, dto.CheckoutRequest{
		Items:   []dto.CheckoutItem{{ProductID: p.ID, Qty: 2}},
		TaxRate: decimal.RequireFromString("0.19"),
		Payment: dto.CheckoutPayment{Method: "card", PaidAmount: decimal.RequireFromString("20.23")},
	})
	require.NoError(t, err)
	assert.Equal(t, "20.23", o.Total.String())
	assert.True(t, o.Payment.Change.IsZero())

	orders, err := c.ListOrders(ctx, dto.OrderListQuery{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, 1, orders.Total)

	receipt, err := c.Receipt(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(receipt, []byte("%PDF")))

	voided, err := c.VoidOrder(ctx, o.ID, "prueba")
	require.NoError(t, err)
	assert.Equal(t, "void", voided.Status)

	summary, err := c.SalesSummary(ctx, dto.SalesSummaryQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Void.Count)
	assert.Equal(t, 0, summary.Paid.Count)

	sup, err := c.CreateSupplier(ctx, dto.CreateSupplierRequest{Name: "Tostadores SAS"})
	require.NoError(t, err)
	inv, err := c.CreatePurchaseInvoice(ctx, dto.CreatePurchaseInvoiceRequest{
		SupplierID: sup.ID,
		Lines:      []dto.PurchaseInvoiceLineRequest{{ProductID: p.ID, Qty: 5, UnitCost: money("4")}},
	})
	require.NoError(t, err)
	posted, err := c.PostPurchaseInvoice(ctx, inv.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "posted", posted.Status)
	assert.Equal(t, "last", posted.CostMode)

	got, err := c.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.StockQty)
	assert.Equal(t, "4", got.Cost.String())

	movs, err := c.Movements(ctx, dto.MovementListQuery{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, movs.Total)
}

func TestClient_APIErrorConMensajeDelServidor(t *testing.T) {
	srv := newServer(t)
	c := posclient.New(posclient.Config{BaseURL: srv.URL})
	ctx := context.Background()
	_, err := c.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	_, err = c.Checkout(ctx, dto.CheckoutRequest{Payment: dto.CheckoutPayment{Method: "cash"}})
	var ae *posclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "VALIDATION", ae.Code)
	assert.Equal(t, "Cart is empty", ae.Message)

	_, err = c.GetOrder(ctx, "no-existe")
	assert.True(t, posclient.IsStatus(err, http.StatusNotFound))

	// los errores distintos de 401 no tocan la sesión
	s, err := c.Session()
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestClient_401BorraSesion(t *testing.T) {
	srv := newServer(t)
	store := posclient.NewMemoryStore()
	require.NoError(t, store.Save(&posclient.Session{Token: "token-vencido"}))
	c := posclient.New(posclient.Config{BaseURL: srv.URL, Sessions: store})

	_, err := c.ListProducts(context.Background(), dto.ProductListQuery{})
	assert.True(t, posclient.IsStatus(err, http.StatusUnauthorized))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = c.ListProducts(context.Background(), dto.ProductListQuery{})
	assert.ErrorIs(t, err, posclient.ErrNoSession)
}

func TestClient_LoginFallido(t *testing.T) {
	srv := newServer(t)
	c := posclient.New(posclient.Config{BaseURL: srv.URL})

	_, err := c.Login(context.Background(), "admin", "incorrecta")
	var ae *posclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
	assert.Equal(t, "Invalid username/password", ae.Message)
}

func TestClient_CuerpoNoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := posclient.New(posclient.Config{BaseURL: srv.URL}).Health(context.Background())
	var ae *posclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Request failed (502)", ae.Message)
}

func TestClient_FalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := posclient.New(posclient.Config{BaseURL: url, Timeout: time.Second}).Health(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, posclient.ErrRequestFailed))
}
